package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
	"github.com/bizboost/support-portal-backend/internal/requests/service"
)

// memStore is a minimal in-memory service.Store for handler tests.
type memStore struct {
	seq  int
	docs map[string]*domain.Request
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]*domain.Request{}}
}

func (m *memStore) Create(_ context.Context, in domain.NewRequestInput) (*domain.Request, error) {
	m.seq++
	id := "req-" + strconv.Itoa(m.seq)
	req := &domain.Request{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		RequestType: in.RequestType,
		Description: in.Description,
		Budget:      in.Budget,
		Timeline:    in.Timeline,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	m.docs[id] = req
	out := *req
	return &out, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.Request, error) {
	req, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	out := *req
	return &out, nil
}

func (m *memStore) ListAll(_ context.Context) ([]domain.Request, error) {
	out := make([]domain.Request, 0, len(m.docs))
	for _, req := range m.docs {
		out = append(out, *req)
	}
	return out, nil
}

func (m *memStore) AttachSolution(_ context.Context, id string, sol domain.Solution) error {
	req, ok := m.docs[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.SolutionTitle = sol.Title
	req.SolutionDescription = sol.Description
	req.SolutionPrice = sol.Price
	req.SolutionSteps = sol.Steps
	if req.Status != domain.StatusCompleted {
		req.Status = domain.StatusInProgress
	}
	return nil
}

func (m *memStore) SetPaymentStatus(_ context.Context, id string, isPaid bool) error {
	req, ok := m.docs[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	now := time.Now().UTC()
	req.IsPaid = isPaid
	if isPaid {
		req.Status = domain.StatusCompleted
		req.PaymentDate = &now
	} else {
		req.Status = domain.StatusInProgress
		req.PaymentDate = nil
	}
	return nil
}

// newPortalRouter wires the handler without the staff auth middleware so
// route behavior can be tested in isolation.
func newPortalRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewRequestService(store, nil, "http://localhost:3000")
	h := New(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublic(api)
	h.RegisterStaff(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() gin.H {
	return gin.H{
		"name":        "Ada Example",
		"email":       "ada@example.com",
		"requestType": "supplier",
		"description": "Looking for a packaging supplier",
		"budget":      "$1000-$5000",
		"timeline":    "2 months",
	}
}

func TestSubmitEndpoint(t *testing.T) {
	t.Run("valid submission returns 201 with a pending request", func(t *testing.T) {
		r := newPortalRouter(newMemStore())

		w := doJSON(t, r, http.MethodPost, "/api/v1/requests", validBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Request domain.Request `json:"request"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Request.ID)
		assert.Equal(t, domain.StatusPending, resp.Request.Status)
		assert.False(t, resp.Request.IsPaid)
	})

	t.Run("validation failures return field-level errors", func(t *testing.T) {
		r := newPortalRouter(newMemStore())

		w := doJSON(t, r, http.MethodPost, "/api/v1/requests", gin.H{"name": "Ada"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "email")
		assert.Contains(t, resp.Fields, "budget")
	})
}

func TestGetEndpoint(t *testing.T) {
	t.Run("unknown id renders 404", func(t *testing.T) {
		r := newPortalRouter(newMemStore())

		w := doJSON(t, r, http.MethodGet, "/api/v1/requests/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("existing id returns the request", func(t *testing.T) {
		store := newMemStore()
		r := newPortalRouter(store)

		w := doJSON(t, r, http.MethodPost, "/api/v1/requests", validBody())
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/v1/requests/req-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestStaffEndpoints(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *memStore) {
		t.Helper()
		store := newMemStore()
		r := newPortalRouter(store)
		w := doJSON(t, r, http.MethodPost, "/api/v1/requests", validBody())
		require.Equal(t, http.StatusCreated, w.Code)
		return r, store
	}

	t.Run("list returns all requests", func(t *testing.T) {
		r, _ := setup(t)

		w := doJSON(t, r, http.MethodGet, "/api/v1/requests", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Requests []domain.Request `json:"requests"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Requests, 1)
	})

	t.Run("attach solution converts price to cents", func(t *testing.T) {
		r, store := setup(t)

		w := doJSON(t, r, http.MethodPut, "/api/v1/requests/req-1/solution", gin.H{
			"solutionTitle":       "Supplier Network",
			"solutionDescription": "Vetted supplier shortlist with contacts",
			"solutionPrice":       "50.00",
			"solutionSteps":       []string{"Research", "Plan"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		req, err := store.GetByID(context.Background(), "req-1")
		require.NoError(t, err)
		assert.Equal(t, int64(5000), req.SolutionPrice)
		assert.Equal(t, domain.StatusInProgress, req.Status)
	})

	t.Run("manual mark paid completes the request", func(t *testing.T) {
		r, store := setup(t)

		w := doJSON(t, r, http.MethodPut, "/api/v1/requests/req-1/payment", gin.H{"isPaid": true})
		require.Equal(t, http.StatusOK, w.Code)

		req, err := store.GetByID(context.Background(), "req-1")
		require.NoError(t, err)
		assert.True(t, req.IsPaid)
		assert.Equal(t, domain.StatusCompleted, req.Status)
	})

	t.Run("payment body without isPaid is rejected", func(t *testing.T) {
		r, _ := setup(t)

		w := doJSON(t, r, http.MethodPut, "/api/v1/requests/req-1/payment", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
