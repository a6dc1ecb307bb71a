package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$50.00", FormatPrice(5000))
	assert.Equal(t, "$19.99", FormatPrice(1999))
	assert.Equal(t, "$0.05", FormatPrice(5))
}

func TestSolutionReady(t *testing.T) {
	req := &domain.Request{
		ID:            "req-1",
		Name:          "Ada Example",
		SolutionTitle: "Supplier Network",
		SolutionPrice: 5000,
	}

	subject, body := SolutionReady(req, "https://portal.example.com/payment/req-1")
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "Supplier Network")
	assert.Contains(t, body, "$50.00")
	assert.Contains(t, body, "https://portal.example.com/payment/req-1")
}

func TestPendingDigest(t *testing.T) {
	pending := []domain.Request{
		{Name: "Ada Example", Email: "ada@example.com", RequestType: domain.TypeSupplier, Budget: "$1000"},
		{Name: "Ben Founder", Email: "ben@example.com", RequestType: domain.TypeFunding, Budget: "$500"},
	}

	subject, body := PendingDigest(pending)
	assert.Contains(t, subject, "2")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "ben@example.com")
}

func TestSubmissionConfirmationEscapesInput(t *testing.T) {
	req := &domain.Request{
		ID:          "req-1",
		Name:        "<script>alert(1)</script>",
		RequestType: domain.TypeOther,
	}

	_, body := SubmissionConfirmation(req)
	assert.NotContains(t, body, "<script>")
}
