package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

func postIntent(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIntent(t *testing.T) {
	t.Run("issues an intent over the stored solution price", func(t *testing.T) {
		store := newFakeRequests()
		store.add("req-1", domain.StatusInProgress, 5000)
		intents := &fakeIntents{}
		r := newTestRouter(New(store, intents, nil, testWebhookSecret))

		w := postIntent(t, r, gin.H{"requestId": "req-1"})

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			ClientSecret string `json:"clientSecret"`
			Amount       int64  `json:"amount"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pi_secret_123", resp.ClientSecret)
		assert.Equal(t, int64(5000), resp.Amount)
		assert.Equal(t, "req-1", intents.lastRequestID)
		assert.Equal(t, int64(5000), intents.lastAmount)
	})

	t.Run("rejects a request without a priced solution", func(t *testing.T) {
		store := newFakeRequests()
		store.add("req-1", domain.StatusPending, 0)
		r := newTestRouter(New(store, &fakeIntents{}, nil, testWebhookSecret))

		w := postIntent(t, r, gin.H{"requestId": "req-1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown request yields not found", func(t *testing.T) {
		r := newTestRouter(New(newFakeRequests(), &fakeIntents{}, nil, testWebhookSecret))

		w := postIntent(t, r, gin.H{"requestId": "missing"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("processor failure surfaces as bad gateway", func(t *testing.T) {
		store := newFakeRequests()
		store.add("req-1", domain.StatusInProgress, 5000)
		intents := &fakeIntents{err: &domain.UpstreamError{Op: "stripe", Err: errors.New("down")}}
		r := newTestRouter(New(store, intents, nil, testWebhookSecret))

		w := postIntent(t, r, gin.H{"requestId": "req-1"})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("missing request id is a bad request", func(t *testing.T) {
		r := newTestRouter(New(newFakeRequests(), &fakeIntents{}, nil, testWebhookSecret))

		w := postIntent(t, r, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
