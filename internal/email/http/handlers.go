package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizboost/support-portal-backend/internal/auth"
	"github.com/bizboost/support-portal-backend/internal/email"
)

// Handler exposes outbound email to staff tooling. Failures are reported to
// the caller; nothing is retried here.
type Handler struct {
	mailer email.Mailer
}

func New(mailer email.Mailer) *Handler {
	return &Handler{mailer: mailer}
}

type sendReq struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (h *Handler) Send(c *gin.Context) {
	if h.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "email is not configured"})
		return
	}

	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Subject) == "" || req.HTML == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	messageID, err := h.mailer.Send(c.Request.Context(), req.To, req.Subject, req.HTML)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to send email"})
		return
	}

	log.Printf("[email] staff_uid=%s to=%s message_id=%s", auth.StaffUID(c), req.To, messageID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "messageId": messageID})
}

// Register registers the staff email route; the caller attaches auth.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/email", h.Send)
}
