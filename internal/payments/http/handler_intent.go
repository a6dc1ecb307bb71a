package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

type createIntentReq struct {
	RequestID string `json:"requestId"`
	Currency  string `json:"currency"`
}

// CreateIntent issues a payment intent for a request's solution. The amount
// is derived from the stored solution price, never trusted from the client.
func (h *Handler) CreateIntent(c *gin.Context) {
	var req createIntentReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RequestID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	requestID := strings.TrimSpace(req.RequestID)

	r, err := h.requests.Get(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if !r.HasSolution() {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "request has no priced solution yet"})
		return
	}

	secret, err := h.intents.CreateIntent(c.Request.Context(), requestID, r.SolutionPrice, req.Currency)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "payment processor unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "clientSecret": secret, "amount": r.SolutionPrice})
}
