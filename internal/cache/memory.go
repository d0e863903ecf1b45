package cache

import (
	"context"
	"path"
	"sync"
	"time"

	"answerhub/internal/config"

	"go.uber.org/zap"
)

// memoryCache is a simple in-process cache with TTL expiry. It is the
// default provider for development and single-instance deployments.
type memoryCache struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	maxKeys int
	logger  *zap.Logger
	done    chan struct{}
	once    sync.Once
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache with a background cleanup loop.
func NewMemoryCache(cfg *config.CacheConfig, logger *zap.Logger) Cache {
	c := &memoryCache{
		items:   make(map[string]memoryItem),
		maxKeys: cfg.MaxKeys,
		logger:  logger,
		done:    make(chan struct{}),
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go c.cleanupLoop(interval)

	return c
}

func (c *memoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *memoryCache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("Evicted expired cache entries", zap.Int("count", removed))
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop an arbitrary entry when full; good enough for a dev cache.
	if c.maxKeys > 0 && len(c.items) >= c.maxKeys {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}

	c.items[key] = memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if matched, _ := path.Match(pattern, key); matched {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) bool {
	_, ok := c.Get(ctx, key)
	return ok
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]memoryItem)
	return nil
}

func (c *memoryCache) Health(_ context.Context) error {
	return nil
}

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}
