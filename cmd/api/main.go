package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/submissions-dashboard/cmd/mainconfig"
	"github.com/wolfman30/submissions-dashboard/internal/api/router"
	"github.com/wolfman30/submissions-dashboard/internal/app/bootstrap"
	"github.com/wolfman30/submissions-dashboard/internal/auth"
	appconfig "github.com/wolfman30/submissions-dashboard/internal/config"
	"github.com/wolfman30/submissions-dashboard/internal/dashboard"
	"github.com/wolfman30/submissions-dashboard/internal/export"
	"github.com/wolfman30/submissions-dashboard/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/submissions-dashboard/internal/http/middleware"
	"github.com/wolfman30/submissions-dashboard/internal/observability/metrics"
	"github.com/wolfman30/submissions-dashboard/internal/whatsapp"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting submissions dashboard API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsHandler, dashboardMetrics := setupMetrics()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}

	svc, err := bootstrap.BuildDashboard(cfg, redisClient, dashboardMetrics, logger)
	if err != nil {
		logger.Error("failed to initialize dashboard", "error", err)
		os.Exit(1)
	}
	if err := svc.Warm(ctx); err != nil {
		logger.Warn("failed to restore cached snapshot", "error", err)
	}
	go dashboard.NewPoller(svc, logger.Component("poller")).
		WithInterval(cfg.PollInterval).
		Run(ctx)

	archiver := setupExportArchiver(ctx, cfg, logger)

	revoker := bootstrap.BuildRevoker(redisClient)
	sessions := auth.NewSessions(cfg.AdminPassword, cfg.AdminJWTSecret, cfg.AdminSessionTTL)
	if strings.TrimSpace(cfg.AdminPassword) == "" || strings.TrimSpace(cfg.AdminJWTSecret) == "" {
		logger.Warn("admin login disabled: ADMIN_PASSWORD and ADMIN_JWT_SECRET must both be set")
	}

	loginLimiter := httpmiddleware.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginBurst)
	go loginLimiter.RunSweeper(ctx, 5*time.Minute)

	links := whatsapp.Builder{BaseURL: cfg.WhatsAppBaseURL}

	routerCfg := &router.Config{
		Logger:             logger,
		Submissions:        handlers.NewSubmissionsHandler(svc, links, archiver, dashboardMetrics, logger),
		Sessions:           handlers.NewSessionHandler(sessions, revoker, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		Revoker:            revoker,
		LoginLimiter:       loginLimiter,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func setupMetrics() (http.Handler, *metrics.DashboardMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	m := metrics.NewDashboardMetrics(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), m
}

// setupExportArchiver returns nil when EXPORT_BUCKET is unset or AWS cannot
// be configured; exports are still served, just not archived.
func setupExportArchiver(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *export.Archiver {
	if strings.TrimSpace(cfg.ExportBucket) == "" {
		return nil
	}
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config; export archival disabled", "error", err)
		return nil
	}
	logger.Info("export archival enabled", "bucket", cfg.ExportBucket)
	return export.NewArchiver(mainconfig.NewS3Client(awsCfg, cfg), cfg.ExportBucket, logger.Component("archiver"))
}
