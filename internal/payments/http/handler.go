package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/bizboost/support-portal-backend/internal/payments/repository"
	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

// RequestStore is the slice of the request service the payment surfaces
// need: read one request and flip its payment status.
type RequestStore interface {
	Get(ctx context.Context, id string) (*domain.Request, error)
	SetPaymentStatus(ctx context.Context, id string, isPaid bool) (*domain.Request, error)
}

// IntentCreator issues a chargeable intent and returns the client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, requestID string, amount int64, currency string) (string, error)
}

// Handler serves payment-intent issuance and the Stripe webhook.
type Handler struct {
	requests      RequestStore
	intents       IntentCreator
	ledger        *repository.EventLedger // nil disables event dedup
	webhookSecret string
}

func New(requests RequestStore, intents IntentCreator, ledger *repository.EventLedger, webhookSecret string) *Handler {
	return &Handler{
		requests:      requests,
		intents:       intents,
		ledger:        ledger,
		webhookSecret: webhookSecret,
	}
}

// Register registers the customer-facing payment routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/payments/intent", h.CreateIntent)
}

// RegisterWebhookRoutes registers the processor-to-server callback routes
// (called by Stripe, not by end users).
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/stripe", h.StripeWebhook)
}
