package handler

import (
	"github.com/Moxxcompany/lockbay/config"
	"github.com/Moxxcompany/lockbay/internal/adapter/http/middleware"
	redisStore "github.com/Moxxcompany/lockbay/internal/adapter/storage/redis"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AdminSvc        ports.AdminVerifier
	HoldMgr         ports.HoldManager
	CashoutSvc      ports.CashoutService
	DepositSvc      ports.DepositService
	ConfirmationSvc ports.ConfirmationProcessor
	ReportingSvc    ports.ReportingService
	SigSvc          ports.SignatureService
	Providers       config.ProvidersConfig
	InternalAPIKey  string
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	AuditSvc        ports.AuditService // nil = audit logging disabled
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Provider webhooks (HMAC signature over raw body) ---
	webhookHandler := NewWebhookHandler(deps.ConfirmationSvc)
	webhookAuth := middleware.WebhookSignature(deps.Providers, deps.SigSvc, deps.Logger)
	r.POST("/webhooks/:provider", rl("webhooks"), webhookAuth, webhookHandler.Receive)

	v1 := r.Group("/api/v1")

	// --- Admin routes ---
	adminHandler := NewAdminHandler(deps.AdminSvc, deps.HoldMgr, deps.ReportingSvc)
	v1.POST("/admin/login", rl("admin_login"), adminHandler.Login)

	adminAuth := middleware.AdminAuth(deps.AdminSvc, deps.Logger)
	admin := v1.Group("/admin", adminAuth)
	{
		admin.POST("/holds/release", rl("admin"), adminHandler.ReleaseHold)
		admin.POST("/holds/dispute", rl("admin"), adminHandler.DisputeHold)
		admin.GET("/review", rl("admin"), adminHandler.ListReviewQueue)
	}

	// --- Internal service-to-service routes ---
	walletHandler := NewWalletHandler(deps.CashoutSvc, deps.DepositSvc, deps.ReportingSvc)
	internalAuth := middleware.InternalAuth(deps.InternalAPIKey, deps.Logger)
	internal := v1.Group("/internal", internalAuth)
	{
		internal.POST("/cashouts", rl("internal"), walletHandler.RequestCashout)
		internal.POST("/deposits", rl("internal"), walletHandler.CreateDeposit)
		internal.GET("/wallets/:user_id/balance/:currency", rl("internal"), walletHandler.GetBalance)
		internal.GET("/wallets/:user_id/ledger", rl("internal"), walletHandler.ListLedger)
	}

	return r
}
