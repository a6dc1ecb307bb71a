package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// StaffUID extracts the authenticated staff member's Firebase UID from the
// Gin context. Set by StaffAuthMiddleware.
func StaffUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// StaffEmail extracts the authenticated staff member's email, if the token
// carried one.
func StaffEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
