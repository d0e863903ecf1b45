package cache

import (
	"context"
	"time"

	"answerhub/internal/config"

	"go.uber.org/zap"
)

// Cache is the caching interface shared by the memory and redis providers.
// Values are stored as-is by the memory provider and JSON-encoded by the
// redis provider, so callers should only cache JSON-friendly types.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}

// New builds the configured cache provider.
func New(cfg *config.CacheConfig, logger *zap.Logger) (Cache, error) {
	switch cfg.Provider {
	case "redis":
		return NewRedisCache(cfg, logger)
	default:
		return NewMemoryCache(cfg, logger), nil
	}
}
