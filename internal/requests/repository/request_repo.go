package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

const requestsCollection = "requests"

// RequestRepository is the sole writer of persisted request state. Every
// mutation goes through one of its operations; callers never patch fields
// on a cached copy.
type RequestRepository struct {
	client *firestore.Client
}

func NewRequestRepository(client *firestore.Client) *RequestRepository {
	return &RequestRepository{client: client}
}

// Create persists a new request with status=pending and isPaid=false.
// The creation timestamp is assigned by Firestore, so it is monotonically
// non-decreasing across the collection.
func (r *RequestRepository) Create(ctx context.Context, in domain.NewRequestInput) (*domain.Request, error) {
	req := domain.Request{
		Name:        in.Name,
		Email:       in.Email,
		RequestType: in.RequestType,
		Description: in.Description,
		Budget:      in.Budget,
		Timeline:    in.Timeline,
		Status:      domain.StatusPending,
		IsPaid:      false,
	}

	doc := r.client.Collection(requestsCollection).NewDoc()
	if _, err := doc.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Read back so the caller sees the server-assigned creation timestamp.
	return r.getDoc(ctx, doc)
}

// GetByID returns a single request, or domain.ErrRequestNotFound.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	return r.getDoc(ctx, r.client.Collection(requestsCollection).Doc(id))
}

// ListAll returns every request, newest first. An empty collection yields
// an empty slice, not an error.
func (r *RequestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	iter := r.client.Collection(requestsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Request, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}

		var req domain.Request
		if err := snap.DataTo(&req); err != nil {
			return nil, fmt.Errorf("decode request %s: %w", snap.Ref.ID, err)
		}
		req.ID = snap.Ref.ID
		out = append(out, req)
	}

	return out, nil
}

// AttachSolution persists the staff-authored solution fields and moves the
// request to in-progress. A request that already reached completed keeps its
// status so re-attaching a solution never regresses the lifecycle.
func (r *RequestRepository) AttachSolution(ctx context.Context, id string, sol domain.Solution) error {
	doc := r.client.Collection(requestsCollection).Doc(id)

	current, err := r.getDoc(ctx, doc)
	if err != nil {
		return err
	}

	nextStatus := domain.StatusInProgress
	if current.Status == domain.StatusCompleted {
		nextStatus = domain.StatusCompleted
	}

	updates := []firestore.Update{
		{Path: "solutionTitle", Value: sol.Title},
		{Path: "solutionDescription", Value: sol.Description},
		{Path: "solutionPrice", Value: sol.Price},
		{Path: "solutionSteps", Value: sol.Steps},
		{Path: "status", Value: nextStatus},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if len(sol.Resources) > 0 {
		updates = append(updates, firestore.Update{Path: "solutionResources", Value: sol.Resources})
	}

	if _, err := doc.Update(ctx, updates); err != nil {
		return mapErr("attach solution", err)
	}
	return nil
}

// SetPaymentStatus persists isPaid and the derived status: completed when
// paid, back to in-progress when not. paymentDate is the server time of the
// transition and is cleared when unpaying. Repeating the call with the same
// value is safe; a repeated mark-paid refreshes paymentDate to the latest
// call time, which is an accepted approximation of strict idempotence.
func (r *RequestRepository) SetPaymentStatus(ctx context.Context, id string, isPaid bool) error {
	nextStatus := domain.StatusInProgress
	var paymentDate interface{}
	if isPaid {
		nextStatus = domain.StatusCompleted
		paymentDate = firestore.ServerTimestamp
	}

	doc := r.client.Collection(requestsCollection).Doc(id)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "isPaid", Value: isPaid},
		{Path: "status", Value: nextStatus},
		{Path: "paymentDate", Value: paymentDate},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return mapErr("set payment status", err)
	}
	return nil
}

func (r *RequestRepository) getDoc(ctx context.Context, doc *firestore.DocumentRef) (*domain.Request, error) {
	snap, err := doc.Get(ctx)
	if err != nil {
		return nil, mapErr("get request", err)
	}

	var req domain.Request
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", doc.ID, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func mapErr(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrRequestNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
