package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bizboost/support-portal-backend/internal/email"
	"github.com/bizboost/support-portal-backend/internal/requests/domain"
	"github.com/bizboost/support-portal-backend/internal/requests/service"
)

// Scheduler emails staff a digest of requests still awaiting review.
type Scheduler struct {
	svc         *service.RequestService
	mailer      email.Mailer
	notifyEmail string
	spec        string // cron spec with seconds, e.g. "0 0 8 * * *"
}

func NewScheduler(svc *service.RequestService, mailer email.Mailer, notifyEmail, spec string) *Scheduler {
	return &Scheduler{
		svc:         svc,
		mailer:      mailer,
		notifyEmail: notifyEmail,
		spec:        spec,
	}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		s.runPendingDigest()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Printf("Cron scheduler started (pending digest at %q)", s.spec)
	c.Start()
}

func (s *Scheduler) runPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	all, err := s.svc.List(ctx)
	if err != nil {
		log.Printf("[digest] listing requests failed: %v", err)
		return
	}

	pending := make([]domain.Request, 0)
	for _, req := range all {
		if req.Status == domain.StatusPending {
			pending = append(pending, req)
		}
	}

	if len(pending) == 0 {
		log.Println("[digest] no pending requests, skipping")
		return
	}

	subject, body := email.PendingDigest(pending)
	messageID, err := s.mailer.Send(ctx, s.notifyEmail, subject, body)
	if err != nil {
		log.Printf("[digest] send failed: %v", err)
		return
	}

	log.Printf("[digest] sent message_id=%s pending=%d", messageID, len(pending))
}
