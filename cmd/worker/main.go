package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bizboost/support-portal-backend/config"
	"github.com/bizboost/support-portal-backend/internal/bootstrap"
	"github.com/bizboost/support-portal-backend/internal/email"
	cronjob "github.com/bizboost/support-portal-backend/internal/email/cron"
	reqrepo "github.com/bizboost/support-portal-backend/internal/requests/repository"
	reqsvc "github.com/bizboost/support-portal-backend/internal/requests/service"
)

// The worker runs the scheduled staff notifications (pending-requests
// digest). It shares the store and mailer with the API but serves no HTTP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Admin.NotifyEmail == "" {
		log.Fatal("ADMIN_NOTIFY_EMAIL is required for the worker")
	}
	if cfg.SMTP.Host == "" {
		log.Fatal("EMAIL_SERVER_HOST is required for the worker")
	}

	ctx := context.Background()

	app, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	store, err := bootstrap.Firestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore: %v", err)
	}
	defer store.Close()

	mailer, err := email.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		log.Fatalf("smtp: %v", err)
	}

	requestRepo := reqrepo.NewRequestRepository(store)
	requestService := reqsvc.NewRequestService(requestRepo, nil, cfg.App.PublicBaseURL)

	scheduler := cronjob.NewScheduler(requestService, mailer, cfg.Admin.NotifyEmail, cfg.Admin.DigestSchedule)
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("worker stopping")
}
