package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/submissions-dashboard/internal/auth"
	appconfig "github.com/wolfman30/submissions-dashboard/internal/config"
	"github.com/wolfman30/submissions-dashboard/internal/dashboard"
	"github.com/wolfman30/submissions-dashboard/internal/observability/metrics"
	"github.com/wolfman30/submissions-dashboard/internal/submissions"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildRevoker picks the Redis-backed revoker when Redis is available so
// logouts survive restarts and are shared across replicas.
func BuildRevoker(redisClient *redis.Client) auth.Revoker {
	if redisClient == nil {
		return auth.NewMemoryRevoker()
	}
	return auth.NewRedisRevoker(redisClient)
}

// BuildDashboard wires the fetch client, optional snapshot cache and service.
func BuildDashboard(cfg *appconfig.Config, redisClient *redis.Client, m *metrics.DashboardMetrics, logger *logging.Logger) (*dashboard.Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	client, err := submissions.New(submissions.Config{
		ScriptURL: cfg.ScriptURL,
		Timeout:   cfg.FetchTimeout,
		Logger:    logger.Component("fetcher"),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: submissions client: %w", err)
	}

	var cache dashboard.Cache
	if redisClient != nil {
		cache = dashboard.NewRedisCache(redisClient, cfg.SnapshotTTL)
		logger.Info("snapshot cache enabled", "ttl", cfg.SnapshotTTL.String())
	}
	return dashboard.NewService(client, cache, m, logger.Component("dashboard")), nil
}
