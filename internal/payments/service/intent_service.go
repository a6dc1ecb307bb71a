package service

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

const defaultCurrency = "usd"

// metadataRequestID is the metadata key linking a payment intent back to
// the request it pays for. Reconciliation reads the same key off the
// webhook event.
const metadataRequestID = "requestId"

// IntentService creates chargeable payment intents with the processor.
// The client is constructed once at process start and injected; there is
// no package-level Stripe state.
type IntentService struct {
	sc *client.API
}

func NewIntentService(secretKey string) *IntentService {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &IntentService{sc: sc}
}

// CreateIntent asks Stripe for a payment intent over amount minor units,
// tagged with the request id, and returns the client secret the payment UI
// needs. Processor failures surface as UpstreamError and are not retried.
func (s *IntentService) CreateIntent(ctx context.Context, requestID string, amount int64, currency string) (string, error) {
	if currency == "" {
		currency = defaultCurrency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata(metadataRequestID, requestID)

	pi, err := s.sc.PaymentIntents.New(params)
	if err != nil {
		return "", &domain.UpstreamError{Op: "stripe: create payment intent", Err: err}
	}

	return pi.ClientSecret, nil
}
