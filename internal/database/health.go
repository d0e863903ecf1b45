package database

import (
	"context"
	"fmt"
	"time"
)

// Health statuses reported by the database health check.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus is the result of a database health check.
type HealthStatus struct {
	Status          string        `json:"status"`
	Latency         time.Duration `json:"latency"`
	OpenConnections int           `json:"open_connections"`
	InUse           int           `json:"in_use"`
	Idle            int           `json:"idle"`
	WaitCount       int64         `json:"wait_count"`
	Errors          []string      `json:"errors,omitempty"`
	CheckedAt       time.Time     `json:"checked_at"`
}

// Health pings the global database manager and reports pool statistics.
func Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    StatusHealthy,
		CheckedAt: time.Now(),
	}

	manager := GetDB()
	if manager == nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, "database manager is not initialized")
		return status
	}

	start := time.Now()
	if err := manager.DB().PingContext(ctx); err != nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, fmt.Sprintf("ping failed: %v", err))
		return status
	}
	status.Latency = time.Since(start)

	stats := manager.DB().Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.WaitCount = stats.WaitCount

	// A saturated pool still answers pings but queues queries.
	if stats.OpenConnections > 0 && stats.InUse == stats.OpenConnections && stats.WaitCount > 0 {
		status.Status = StatusDegraded
		status.Errors = append(status.Errors, "connection pool saturated")
	}

	return status
}
