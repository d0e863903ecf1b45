package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"answerhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DB is the global database manager instance
var DB *Manager

// initMutex prevents concurrent initialization
var initMutex sync.Mutex

// InitDB initializes the database manager, runs migrations and waits for
// the database to report healthy.
func InitDB(cfg *config.Config, logger *zap.Logger) error {
	initMutex.Lock()
	defer initMutex.Unlock()

	if DB != nil {
		logger.Info("Database manager already initialized")
		return nil
	}

	manager, err := NewManager(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	DB = manager

	if err := manager.Migrate(cfg.Database.MigrationsPath); err != nil {
		DB = nil
		manager.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := waitForHealth(manager, logger); err != nil {
		DB = nil
		manager.Close()
		return fmt.Errorf("database failed to become healthy: %w", err)
	}

	logger.Info("Database initialized successfully")
	return nil
}

// GetDB returns the global database manager.
func GetDB() *Manager {
	initMutex.Lock()
	defer initMutex.Unlock()
	return DB
}

// waitForHealth pings the database with exponential backoff until it
// responds or the retry budget is exhausted.
func waitForHealth(manager *Manager, logger *zap.Logger) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = 30 * time.Second

	attempt := 0
	operation := func() error {
		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := manager.DB().PingContext(ctx); err != nil {
			logger.Warn("Database health check failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		return nil
	}

	return backoff.Retry(operation, policy)
}
