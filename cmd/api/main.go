package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizboost/support-portal-backend/config"
	"github.com/bizboost/support-portal-backend/internal/bootstrap"
	"github.com/bizboost/support-portal-backend/internal/email"
	paysvc "github.com/bizboost/support-portal-backend/internal/payments/service"
	reqrepo "github.com/bizboost/support-portal-backend/internal/requests/repository"
	reqsvc "github.com/bizboost/support-portal-backend/internal/requests/service"
)

const serviceName = "support-portal-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

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

	authClient, err := bootstrap.AuthClient(ctx, app)
	if err != nil {
		log.Fatalf("firebase auth: %v", err)
	}

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var mailer email.Mailer
	if cfg.SMTP.Host != "" {
		m, err := email.NewSMTPMailer(cfg.SMTP)
		if err != nil {
			log.Fatalf("smtp: %v", err)
		}
		mailer = m
	} else {
		log.Println("EMAIL_SERVER_HOST not set, outbound email disabled")
	}

	requestRepo := reqrepo.NewRequestRepository(store)
	requestService := reqsvc.NewRequestService(requestRepo, mailer, cfg.App.PublicBaseURL)
	intentService := paysvc.NewIntentService(cfg.Stripe.SecretKey)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Requests:       requestService,
		Intents:        intentService,
		Mailer:         mailer,
		AuthClient:     authClient,
		Redis:          redisClient,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
