package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/bizboost/support-portal-backend/internal/requests/domain"
)

// SubmissionConfirmation is sent to the requester right after a request
// is created.
func SubmissionConfirmation(req *domain.Request) (subject, body string) {
	subject = "We received your business support request"
	body = fmt.Sprintf(`
<h2>Thanks, %s!</h2>
<p>Your %s request has been received and is now <strong>pending</strong> review.
Our team will get back to you with a tailored solution.</p>
<p>Reference: %s</p>`,
		html.EscapeString(req.Name),
		html.EscapeString(string(req.RequestType)),
		html.EscapeString(req.ID),
	)
	return subject, body
}

// SolutionReady is sent when staff attach a solution; payURL points the
// customer at the payment page for this request.
func SolutionReady(req *domain.Request, payURL string) (subject, body string) {
	subject = "Your personalized solution is ready"
	body = fmt.Sprintf(`
<h2>Good news, %s!</h2>
<p>We prepared a solution for your request: <strong>%s</strong>.</p>
<p>Price: %s</p>
<p><a href="%s">Review and pay for your solution</a> to unlock the full details.</p>`,
		html.EscapeString(req.Name),
		html.EscapeString(req.SolutionTitle),
		FormatPrice(req.SolutionPrice),
		payURL,
	)
	return subject, body
}

// PendingDigest summarizes requests still awaiting review, for the staff
// reminder mail.
func PendingDigest(pending []domain.Request) (subject, body string) {
	subject = fmt.Sprintf("%d request(s) awaiting review", len(pending))

	var b strings.Builder
	b.WriteString("<h2>Pending support requests</h2><ul>")
	for _, req := range pending {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s) &mdash; %s, budget %s</li>",
			html.EscapeString(req.Name),
			html.EscapeString(string(req.RequestType)),
			html.EscapeString(req.Email),
			html.EscapeString(req.Budget),
		)
	}
	b.WriteString("</ul>")
	return subject, b.String()
}

// FormatPrice renders a minor-unit amount as dollars, e.g. 5000 -> "$50.00".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
