package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

// signatureHeader carries Stripe's HMAC signature over the raw body.
const signatureHeader = "Stripe-Signature"

// metadataRequestID matches the metadata key intent issuance tags intents with.
const metadataRequestID = "requestId"

// StripeWebhook reconciles asynchronous payment events with stored request
// state. Only payment_intent.succeeded changes anything; every other event
// kind is acknowledged so Stripe does not mark the delivery failed. A
// non-2xx response is the only retry mechanism: Stripe redelivers until it
// sees 200.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader(signatureHeader), h.webhookSecret)
	if err != nil {
		log.Printf("[payments] webhook signature rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if event.Type != stripe.EventTypePaymentIntentSucceeded {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		// Signed but unparseable; acknowledge so Stripe does not retry a
		// payload we will never understand.
		log.Printf("[payments] webhook event_id=%s unparseable object: %v", event.ID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	requestID := intent.Metadata[metadataRequestID]
	if requestID == "" {
		// Not tagged with one of our request ids; treat as not-for-us.
		log.Printf("[payments] webhook event_id=%s has no request id, ignoring", event.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if h.ledger != nil {
		seen, err := h.ledger.Seen(c.Request.Context(), event.ID)
		if err != nil {
			log.Printf("[payments] ledger lookup failed event_id=%s err=%v", event.ID, err)
		} else if seen {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
	}

	if _, err := h.requests.SetPaymentStatus(c.Request.Context(), requestID, true); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			log.Printf("[payments] webhook event_id=%s request_id=%s not found", event.ID, requestID)
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		log.Printf("[payments] webhook event_id=%s request_id=%s update failed: %v", event.ID, requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
		return
	}

	if h.ledger != nil {
		if _, err := h.ledger.MarkProcessed(c.Request.Context(), event.ID); err != nil {
			log.Printf("[payments] ledger write failed event_id=%s err=%v", event.ID, err)
		}
	}

	log.Printf("[payments] request_id=%s marked paid via webhook event_id=%s", requestID, event.ID)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
