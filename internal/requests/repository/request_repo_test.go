package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

// Firestore itself is exercised against the emulator in staging; here we
// pin the error mapping the rest of the system depends on.
func TestMapErr(t *testing.T) {
	t.Run("grpc not-found becomes the domain sentinel", func(t *testing.T) {
		err := mapErr("get request", status.Error(codes.NotFound, "no such document"))
		assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	})

	t.Run("other failures keep the operation context", func(t *testing.T) {
		err := mapErr("get request", status.Error(codes.Unavailable, "backend unavailable"))
		assert.NotErrorIs(t, err, domain.ErrRequestNotFound)
		assert.Contains(t, err.Error(), "get request")
	})

	t.Run("plain errors pass through wrapped", func(t *testing.T) {
		base := errors.New("dial tcp: connection refused")
		err := mapErr("list requests", base)
		assert.ErrorIs(t, err, base)
	})
}
