package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Stripe implements Provider against the Stripe REST API (form-encoded requests, bearer auth).
type Stripe struct {
	client    *resty.Client
	secretKey string
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripe creates a client for baseURL (normally https://api.stripe.com/v1).
func NewStripe(baseURL, secretKey string) *Stripe {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(secretKey).
		SetTimeout(15 * time.Second)

	return &Stripe{client: client, secretKey: secretKey}
}

func (s *Stripe) request(ctx context.Context) (*resty.Request, error) {
	if s.secretKey == "" {
		return nil, ErrProviderNotConfigured
	}
	return s.client.R().SetContext(ctx).SetError(&stripeError{}), nil
}

func (s *Stripe) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	req, err := s.request(ctx)
	if err != nil {
		return nil, err
	}

	var customer Customer
	resp, err := req.
		SetFormData(map[string]string{"email": email, "name": name}).
		SetResult(&customer).
		Post("/customers")
	if err := checkResponse(resp, err, "create customer"); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Stripe) CreatePaymentIntent(ctx context.Context, params IntentParams) (*PaymentIntent, error) {
	req, err := s.request(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", strings.ToLower(params.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	if params.CustomerID != "" {
		form.Set("customer", params.CustomerID)
	}
	if params.Description != "" {
		form.Set("description", params.Description)
	}
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var intent PaymentIntent
	resp, err := req.
		SetFormDataFromValues(form).
		SetResult(&intent).
		Post("/payment_intents")
	if err := checkResponse(resp, err, "create payment intent"); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (s *Stripe) RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	req, err := s.request(ctx)
	if err != nil {
		return nil, err
	}

	var intent PaymentIntent
	resp, err := req.
		SetPathParam("id", id).
		SetResult(&intent).
		Get("/payment_intents/{id}")
	if err := checkResponse(resp, err, "retrieve payment intent"); err != nil {
		return nil, err
	}
	return &intent, nil
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("stripe %s: %w", op, err)
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*stripeError); ok && e.Error.Message != "" {
			return fmt.Errorf("stripe %s: %s (status %d)", op, e.Error.Message, resp.StatusCode())
		}
		return fmt.Errorf("stripe %s: status %d", op, resp.StatusCode())
	}
	return nil
}
