package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/bizboost/support-portal-backend/config"
)

// Mailer is the transactional-mail contract: send one HTML message and
// return its message id. Failures are reported to the caller and are not
// retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// SMTPMailer sends through a plain SMTP relay, the same transport the
// portal has always used.
type SMTPMailer struct {
	client *gomail.Client
	from   string
	domain string // message-id domain, derived from the from address
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("EMAIL_SERVER_HOST is required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.From,
		domain: messageIDDomain(cfg.From),
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) (string, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return "", fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return "", fmt.Errorf("invalid to address: %w", err)
	}

	messageID := uuid.NewString() + "@" + m.domain
	msg.SetMessageIDWithValue(messageID)
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, html)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("send mail: %w", err)
	}

	return messageID, nil
}

func messageIDDomain(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return "localhost"
	}
	if i := strings.LastIndex(addr.Address, "@"); i >= 0 {
		return addr.Address[i+1:]
	}
	return "localhost"
}
