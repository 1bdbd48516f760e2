// Package payment talks to the external card-payment provider.
package payment

import (
	"context"
	"errors"
)

const StatusSucceeded = "succeeded"

var ErrProviderNotConfigured = errors.New("payment provider is not configured")

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IntentParams describes a charge. Amount is in minor units (cents).
type IntentParams struct {
	Amount      int64
	Currency    string
	CustomerID  string
	Description string
	Metadata    map[string]string
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Customer     string            `json:"customer"`
	LatestCharge string            `json:"latest_charge"`
	Metadata     map[string]string `json:"metadata"`
}

// Provider is the subset of the payment API used by checkout.
type Provider interface {
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// Gateway is the process-wide provider, set at startup.
var Gateway Provider
