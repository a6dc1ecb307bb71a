package service

import (
	"context"
	"log"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/bizboost/support-portal-backend/internal/email"
	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

// Store is the persistence contract the service depends on. The Firestore
// repository implements it; tests substitute an in-memory fake.
type Store interface {
	Create(ctx context.Context, in domain.NewRequestInput) (*domain.Request, error)
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	AttachSolution(ctx context.Context, id string, sol domain.Solution) error
	SetPaymentStatus(ctx context.Context, id string, isPaid bool) error
}

// RequestService enforces the request lifecycle rules on top of the store
// and sends best-effort notification emails.
type RequestService struct {
	store         Store
	mailer        email.Mailer // nil disables notifications
	publicBaseURL string
}

func NewRequestService(store Store, mailer email.Mailer, publicBaseURL string) *RequestService {
	return &RequestService{
		store:         store,
		mailer:        mailer,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// SolutionInput is the staff form payload. Price arrives as the decimal
// string the form collects ("50.00") and is converted to minor units before
// it is persisted.
type SolutionInput struct {
	Title       string            `json:"solutionTitle"`
	Description string            `json:"solutionDescription"`
	Price       string            `json:"solutionPrice"`
	Steps       []string          `json:"solutionSteps"`
	Resources   []domain.Resource `json:"solutionResources,omitempty"`
}

// Submit validates and persists a new customer request, then emails the
// requester a confirmation. Email failure never fails the submission.
func (s *RequestService) Submit(ctx context.Context, in domain.NewRequestInput) (*domain.Request, error) {
	fields := map[string]string{}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Description = strings.TrimSpace(in.Description)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Timeline = strings.TrimSpace(in.Timeline)

	if in.Name == "" {
		fields["name"] = "name is required"
	}
	if in.Email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "email is not a valid address"
	}
	if in.RequestType == "" {
		fields["requestType"] = "request type is required"
	} else if !in.RequestType.Valid() {
		fields["requestType"] = "unknown request type"
	}
	if in.Description == "" {
		fields["description"] = "description is required"
	}
	if in.Budget == "" {
		fields["budget"] = "budget is required"
	}
	if in.Timeline == "" {
		fields["timeline"] = "timeline is required"
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	req, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		subject, html := email.SubmissionConfirmation(req)
		if _, err := s.mailer.Send(ctx, req.Email, subject, html); err != nil {
			log.Printf("[requests] confirmation email failed request_id=%s err=%v", req.ID, err)
		}
	}

	return req, nil
}

// Get returns a single request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.Request, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all requests, newest first.
func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	return s.store.ListAll(ctx)
}

// AttachSolution validates the staff form, persists the solution, and emails
// the requester a payment link.
func (s *RequestService) AttachSolution(ctx context.Context, id string, in SolutionInput) (*domain.Request, error) {
	fields := map[string]string{}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if len(in.Title) < 2 {
		fields["solutionTitle"] = "title must be at least 2 characters"
	}
	if len(in.Description) < 10 {
		fields["solutionDescription"] = "description must be at least 10 characters"
	}

	price, err := ParsePrice(in.Price)
	if err != nil {
		fields["solutionPrice"] = err.Error()
	}

	if len(in.Steps) == 0 {
		fields["solutionSteps"] = "at least one step is required"
	}
	steps := make([]string, 0, len(in.Steps))
	for i, step := range in.Steps {
		step = strings.TrimSpace(step)
		if step == "" {
			fields["solutionSteps"] = "step " + strconv.Itoa(i+1) + " is empty"
			continue
		}
		steps = append(steps, step)
	}

	for i, res := range in.Resources {
		if strings.TrimSpace(res.Name) == "" {
			fields["solutionResources"] = "resource " + strconv.Itoa(i+1) + " has no name"
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	sol := domain.Solution{
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		Steps:       steps,
		Resources:   in.Resources,
	}

	if err := s.store.AttachSolution(ctx, id, sol); err != nil {
		return nil, err
	}

	req, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		subject, html := email.SolutionReady(req, s.paymentURL(req.ID))
		if _, err := s.mailer.Send(ctx, req.Email, subject, html); err != nil {
			log.Printf("[requests] solution email failed request_id=%s err=%v", req.ID, err)
		}
	}

	return req, nil
}

// SetPaymentStatus marks a request paid or unpaid. The manual staff action
// and the webhook reconciliation both land here, so their semantics are
// identical by construction.
func (s *RequestService) SetPaymentStatus(ctx context.Context, id string, isPaid bool) (*domain.Request, error) {
	if err := s.store.SetPaymentStatus(ctx, id, isPaid); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *RequestService) paymentURL(id string) string {
	return s.publicBaseURL + "/payment/" + id
}

// ParsePrice converts a decimal price string like "50.00" into minor
// currency units (5000). The amount must be positive.
func ParsePrice(price string) (int64, error) {
	price = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	if price == "" {
		return 0, errPriceRequired
	}

	f, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, errPriceInvalid
	}

	cents := int64(math.Round(f * 100))
	if cents <= 0 {
		return 0, errPricePositive
	}
	return cents, nil
}

var (
	errPriceRequired = &priceError{"price is required"}
	errPriceInvalid  = &priceError{"price is not a valid amount"}
	errPricePositive = &priceError{"price must be greater than zero"}
)

type priceError struct{ msg string }

func (e *priceError) Error() string { return e.msg }
