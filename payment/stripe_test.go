package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "4999", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
		assert.Equal(t, "12", r.PostForm.Get("metadata[course_id]"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "pi_1", "client_secret": "pi_1_secret", "amount": 4999, "currency": "usd", "status": "requires_payment_method",
		})
	}))
	defer srv.Close()

	s := NewStripe(srv.URL+"/v1", "sk_test")
	intent, err := s.CreatePaymentIntent(context.Background(), IntentParams{
		Amount:     4999,
		Currency:   "USD",
		CustomerID: "cus_1",
		Metadata:   map[string]string{"course_id": "12"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	assert.Equal(t, int64(4999), intent.Amount)
}

func TestStripeRetrieveAndCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/payment_intents/pi_9":
			_, _ = w.Write([]byte(`{"id":"pi_9","status":"succeeded","latest_charge":"ch_1","amount":100}`))
		case r.Method == http.MethodPost && r.URL.Path == "/customers":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "alice@example.com", r.PostForm.Get("email"))
			_, _ = w.Write([]byte(`{"id":"cus_42","email":"alice@example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewStripe(srv.URL, "sk_test")

	intent, err := s.RetrievePaymentIntent(context.Background(), "pi_9")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, intent.Status)
	assert.Equal(t, "ch_1", intent.LatestCharge)

	customer, err := s.CreateCustomer(context.Background(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "cus_42", customer.ID)
}

func TestStripeErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	s := NewStripe(srv.URL, "sk_test")
	_, err := s.RetrievePaymentIntent(context.Background(), "pi_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestStripeWithoutKey(t *testing.T) {
	s := NewStripe("http://127.0.0.1:1", "")
	_, err := s.CreateCustomer(context.Background(), "a@b.c", "A")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}
