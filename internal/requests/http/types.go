package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bizboost/support-portal-backend/internal/requests/service"
)

// Handler serves the portal's request endpoints.
type Handler struct {
	svc *service.RequestService
}

func New(svc *service.RequestService) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublic registers the customer-facing routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/requests", h.Submit)
	rg.GET("/requests/:id", h.Get)
}

// RegisterStaff registers the admin routes; the caller is expected to have
// attached the staff auth middleware to rg already.
func (h *Handler) RegisterStaff(rg *gin.RouterGroup) {
	rg.GET("/requests", h.List)
	rg.PUT("/requests/:id/solution", h.AttachSolution)
	rg.PUT("/requests/:id/payment", h.SetPaymentStatus)
}
