package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
	"github.com/bizboost/support-portal-backend/internal/requests/service"
)

// Submit accepts a customer request submission.
func (h *Handler) Submit(c *gin.Context) {
	var in domain.NewRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	req, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "request": req})
}

// Get returns a single request; the confirmation and payment pages read it.
func (h *Handler) Get(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

// List returns every request, newest first, for the admin dashboard.
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": items})
}

// AttachSolution saves the staff-authored solution for a request.
func (h *Handler) AttachSolution(c *gin.Context) {
	var in service.SolutionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	req, err := h.svc.AttachSolution(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

type setPaymentReq struct {
	IsPaid *bool `json:"isPaid"`
}

// SetPaymentStatus is the manual mark-paid/unpaid action from the admin
// dashboard. It shares the store operation with the webhook path, so both
// produce identical state.
func (h *Handler) SetPaymentStatus(c *gin.Context) {
	var in setPaymentReq
	if err := c.ShouldBindJSON(&in); err != nil || in.IsPaid == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	req, err := h.svc.SetPaymentStatus(c.Request.Context(), c.Param("id"), *in.IsPaid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": vErr.Fields})
	case errors.Is(err, domain.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
