package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cashboard/backend/internal/application/dashboard"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/cashboard/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dashboardKeyPrefix = "dashboard:result:"

// RedisDashboardCache caches assembled dashboards in Redis as JSON. Cache
// failures are never surfaced to callers: a broken cache degrades to
// recomputation, not to a failed request.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDashboardCache creates a cache backed by a new Redis connection.
func NewRedisDashboardCache(cfg *config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisDashboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisDashboardCacheWithClient(client, ttl, logger), nil
}

// NewRedisDashboardCacheWithClient creates a cache over an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisDashboardCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDashboardCache {
	return &RedisDashboardCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

// GetDashboard implements dashboard.ResultCache
func (c *RedisDashboardCache) GetDashboard(ctx context.Context, key string) (*report.Dashboard, bool) {
	payload, err := c.client.Get(ctx, dashboardKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var result report.Dashboard
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.Warn("Dashboard cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &result, true
}

// SetDashboard implements dashboard.ResultCache
func (c *RedisDashboardCache) SetDashboard(ctx context.Context, key string, d *report.Dashboard) {
	payload, err := json.Marshal(d)
	if err != nil {
		c.logger.Warn("Dashboard cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, dashboardKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}

var _ dashboard.ResultCache = (*RedisDashboardCache)(nil)
