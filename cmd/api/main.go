package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adlweddings/wedding-lead-platform/internal/api/router"
	"github.com/adlweddings/wedding-lead-platform/internal/app/bootstrap"
	appconfig "github.com/adlweddings/wedding-lead-platform/internal/config"
	"github.com/adlweddings/wedding-lead-platform/internal/dedup"
	"github.com/adlweddings/wedding-lead-platform/internal/leads"
	"github.com/adlweddings/wedding-lead-platform/internal/notify"
	"github.com/adlweddings/wedding-lead-platform/internal/observability/metrics"
	"github.com/adlweddings/wedding-lead-platform/internal/worker/resort"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting wedding-lead-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Lead sheet: Postgres when configured, in-memory otherwise.
	var sheet leads.Sheet
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		sheet = leads.NewPostgresSheet(pool)
		logger.Info("lead sheet backed by postgres")
	} else {
		sheet = leads.NewMemorySheet()
		logger.Warn("DATABASE_URL not set, lead sheet is in-memory only")
	}

	leadMetrics := metrics.NewLeadMetrics(nil)

	// Email notification to the configured inbox.
	sender := bootstrap.BuildEmailSender(ctx, cfg, logger)
	notifier := notify.NewLeadNotifier(sender, cfg.NotifyRecipient, cfg.NotifyTimeout, leadMetrics, logger)

	// Optional duplicate-submission guard.
	var guard leads.DedupGuard
	if redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		if g := dedup.NewRedisGuard(redisClient, cfg.DedupTTL, logger); g != nil {
			guard = g
			logger.Info("duplicate submission guard enabled", "ttl", cfg.DedupTTL)
		}
	}

	// Initialize handlers
	leadsHandler := leads.NewHandler(sheet, notifier, guard, leadMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Hourly priority re-sort.
	scheduler := resort.NewScheduler()
	if cfg.ResortEnabled {
		resorter := resort.NewResorter(sheet, leadMetrics, logger).WithInterval(cfg.ResortInterval)
		scheduler.Setup(ctx, resorter)
		logger.Info("priority re-sort scheduled", "interval", cfg.ResortInterval)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
