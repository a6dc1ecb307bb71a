package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/bizboost/support-portal-backend/internal/api/http"
	apimiddleware "github.com/bizboost/support-portal-backend/internal/api/http/middleware"
	authmiddleware "github.com/bizboost/support-portal-backend/internal/auth/middleware"
	"github.com/bizboost/support-portal-backend/internal/email"
	emailhttp "github.com/bizboost/support-portal-backend/internal/email/http"
	payhttp "github.com/bizboost/support-portal-backend/internal/payments/http"
	payrepo "github.com/bizboost/support-portal-backend/internal/payments/repository"
	paysvc "github.com/bizboost/support-portal-backend/internal/payments/service"
	reqhttp "github.com/bizboost/support-portal-backend/internal/requests/http"
	reqsvc "github.com/bizboost/support-portal-backend/internal/requests/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string

	Requests      *reqsvc.RequestService
	Intents       *paysvc.IntentService
	Mailer        email.Mailer // nil disables /email
	AuthClient    *fbauth.Client
	Redis         *redis.Client // nil disables the event ledger
	WebhookSecret string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())

	var ledger *payrepo.EventLedger
	if dep.Redis != nil {
		ledger = payrepo.NewEventLedger(dep.Redis)
	}

	requestHandler := reqhttp.New(dep.Requests)
	requestHandler.RegisterPublic(api)

	paymentHandler := payhttp.New(dep.Requests, dep.Intents, ledger, dep.WebhookSecret)
	paymentHandler.Register(api)
	paymentHandler.RegisterWebhookRoutes(api)

	staff := api.Group("")
	staff.Use(authmiddleware.StaffAuthMiddleware(dep.AuthClient))
	requestHandler.RegisterStaff(staff)
	emailhttp.New(dep.Mailer).Register(staff)

	return r
}
