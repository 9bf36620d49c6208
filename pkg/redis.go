package pkg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/config"
)

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewFormCache caches forms in redis when REDIS_URL is set. Without redis,
// or when it cannot be reached, forms are always read from the database.
// The returned close func is never nil.
func NewFormCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cache.FormCache, func() error) {
	noop := func() error { return nil }
	if cfg.RedisURL == "" {
		logger.Info("Form cache disabled")
		return cache.NewFormCache(cache.NewNoopCache(), cfg.FormCacheTTL, logger), noop
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, form cache disabled", "error", err)
		return cache.NewFormCache(cache.NewNoopCache(), cfg.FormCacheTTL, logger), noop
	}

	return cache.NewFormCache(cache.NewRedisCache(client, logger), cfg.FormCacheTTL, logger), client.Close
}
