package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Moxxcompany/lockbay/config"
	httpHandler "github.com/Moxxcompany/lockbay/internal/adapter/http/handler"
	"github.com/Moxxcompany/lockbay/internal/adapter/provider"
	pgStorage "github.com/Moxxcompany/lockbay/internal/adapter/storage/postgres"
	redisStorage "github.com/Moxxcompany/lockbay/internal/adapter/storage/redis"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/service"
	"github.com/Moxxcompany/lockbay/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Lockbay wallet core")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	holdRepo := pgStorage.NewHoldRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	cashoutRepo := pgStorage.NewCashoutRepo(pool)
	depositRepo := pgStorage.NewDepositRepo(pool)
	adminRepo := pgStorage.NewAdminRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	rateCache := redisStorage.NewRateCache(rdb)
	dedupeStore := redisStorage.NewDedupeStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	destCipher, err := service.NewDestinationCipher(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize destination cipher")
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewAdminCredentialHasher()
	auditSvc := service.NewAuditService(auditRepo, log)
	adminSvc := service.NewAdminService(adminRepo, hashSvc, auditSvc, cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer, log)

	// External collaborators
	providers := provider.NewRegistry(cfg.Providers, log)
	notifyClient := &http.Client{Timeout: cfg.Notify.Timeout}
	notifier := service.NewNotificationService(cfg.Notify.GatewayURL, notifyClient, log)
	rateSvc := service.NewRateService(cfg.Rates.OracleURL, rateCache, cfg.Rates.CacheTTL, &http.Client{Timeout: 10 * time.Second}, log)

	// Business services
	holdMgr := service.NewHoldService(walletRepo, holdRepo, ledgerRepo, adminSvc, auditSvc, transactor, log)
	retrySvc := service.NewRetryService(cashoutRepo, holdMgr, notifier, cfg.Retry.BatchSize, log)
	cashoutSvc := service.NewCashoutService(cashoutRepo, holdRepo, holdMgr, providers, retrySvc, destCipher, notifier, log)
	retrySvc.SetSender(cashoutSvc)
	confirmationSvc := service.NewConfirmationService(
		depositRepo, ledgerRepo, holdMgr, dedupeStore, rateSvc, notifier,
		decimal.NewFromFloat(cfg.Payment.ToleranceUSD), log,
	)
	depositSvc := service.NewDepositService(
		depositRepo, providers,
		decimal.NewFromFloat(cfg.Payment.FeeRate), cfg.Payment.MinConfirmations, log,
	)
	reportingSvc := service.NewReportingService(walletRepo, ledgerRepo, cashoutRepo)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AdminSvc:        adminSvc,
		HoldMgr:         holdMgr,
		CashoutSvc:      cashoutSvc,
		DepositSvc:      depositSvc,
		ConfirmationSvc: confirmationSvc,
		ReportingSvc:    reportingSvc,
		SigSvc:          sigSvc,
		Providers:       cfg.Providers,
		InternalAPIKey:  cfg.Server.InternalAPIKey,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:        auditSvc,
		Logger:          log,
	})

	// Retry sweep loop
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(cfg.Retry.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := retrySvc.Sweep(sweepCtx); err != nil {
					log.Error().Err(err).Msg("retry sweep failed")
				}
			}
		}
	}()

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
