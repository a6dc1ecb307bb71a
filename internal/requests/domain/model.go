package domain

import "time"

// Status is the lifecycle state of a support request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	// StatusCancelled is part of the admin filter vocabulary but no
	// operation assigns it yet.
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// RequestType categorizes what kind of business support the customer needs.
type RequestType string

const (
	TypeSupplier   RequestType = "supplier"
	TypeStartup    RequestType = "startup"
	TypeFreelancer RequestType = "freelancer"
	TypeMarketing  RequestType = "marketing"
	TypeFunding    RequestType = "funding"
	TypeOther      RequestType = "other"
)

func (t RequestType) Valid() bool {
	switch t {
	case TypeSupplier, TypeStartup, TypeFreelancer, TypeMarketing, TypeFunding, TypeOther:
		return true
	}
	return false
}

// Resource is a named attachment on a solution (e.g. a template or guide).
type Resource struct {
	Name string `firestore:"name" json:"name"`
	URL  string `firestore:"url,omitempty" json:"url,omitempty"`
}

// Request is a customer-submitted support case. Solution* fields are empty
// until staff attach a solution; SolutionPrice is in minor currency units
// (cents) so payment amounts never go through floating point.
type Request struct {
	ID          string      `firestore:"-" json:"id"`
	Name        string      `firestore:"name" json:"name"`
	Email       string      `firestore:"email" json:"email"`
	RequestType RequestType `firestore:"requestType" json:"requestType"`
	Description string      `firestore:"description" json:"description"`
	Budget      string      `firestore:"budget" json:"budget"`
	Timeline    string      `firestore:"timeline" json:"timeline"`

	Status Status `firestore:"status" json:"status"`

	SolutionTitle       string     `firestore:"solutionTitle,omitempty" json:"solutionTitle,omitempty"`
	SolutionDescription string     `firestore:"solutionDescription,omitempty" json:"solutionDescription,omitempty"`
	SolutionPrice       int64      `firestore:"solutionPrice,omitempty" json:"solutionPrice,omitempty"`
	SolutionSteps       []string   `firestore:"solutionSteps,omitempty" json:"solutionSteps,omitempty"`
	SolutionResources   []Resource `firestore:"solutionResources,omitempty" json:"solutionResources,omitempty"`

	IsPaid      bool       `firestore:"isPaid" json:"isPaid"`
	PaymentDate *time.Time `firestore:"paymentDate" json:"paymentDate,omitempty"`

	CreatedAt time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt *time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}

// HasSolution reports whether staff have attached a priced solution yet.
// Payment intents can only be issued once this is true.
func (r *Request) HasSolution() bool {
	return r.SolutionTitle != "" && r.SolutionPrice > 0
}

// NewRequestInput carries the customer submission fields.
type NewRequestInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	RequestType RequestType `json:"requestType"`
	Description string      `json:"description"`
	Budget      string      `json:"budget"`
	Timeline    string      `json:"timeline"`
}

// Solution carries the staff-authored solution fields, price already
// converted to minor units.
type Solution struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Steps       []string   `json:"steps"`
	Resources   []Resource `json:"resources,omitempty"`
}
