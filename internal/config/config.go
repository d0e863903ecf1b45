package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	TrustedOrigins  []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                 string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetime     time.Duration
	ConnMaxIdleTime     time.Duration
	ConnectTimeout      time.Duration
	SlowQueryThreshold  time.Duration
	HealthCheckInterval time.Duration
	MigrationsPath      string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	SessionName   string
	SessionExpiry time.Duration
	SessionSecure bool
	BCryptCost    int
	JWTSecret     string
	JWTExpiry     time.Duration
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Provider        string // "memory" or "redis"
	TTL             time.Duration
	MaxKeys         int
	CleanupInterval time.Duration
	RedisURL        string
	RedisDB         int
	RedisPassword   string
	PoolSize        int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments use the process environment.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", time.Minute),
			GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
			TrustedOrigins:  getSliceEnv("SERVER_TRUSTED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:                 getEnv("DATABASE_URL", ""),
			MaxOpenConns:        getIntEnv("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns:        getIntEnv("DB_MAX_IDLE_CONNS", 0),
			ConnMaxLifetime:     getDurationEnv("DB_CONN_MAX_LIFETIME", 0),
			ConnMaxIdleTime:     getDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
			ConnectTimeout:      getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			SlowQueryThreshold:  getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 0),
			HealthCheckInterval: getDurationEnv("DB_HEALTH_CHECK_INTERVAL", 30*time.Second),
			MigrationsPath:      getEnv("DB_MIGRATIONS_PATH", "./migrations"),
		},
		Auth: AuthConfig{
			SessionName:   getEnv("SESSION_NAME", "session_token"),
			SessionExpiry: getDurationEnv("SESSION_EXPIRY", 24*time.Hour),
			SessionSecure: getBoolEnv("SESSION_SECURE", false),
			BCryptCost:    getIntEnv("BCRYPT_COST", 12),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiry:     getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		},
		Cache: CacheConfig{
			Provider:        getEnv("CACHE_PROVIDER", "memory"),
			TTL:             getDurationEnv("CACHE_TTL", 15*time.Minute),
			MaxKeys:         getIntEnv("CACHE_MAX_KEYS", 10000),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
			RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
			RedisDB:         getIntEnv("REDIS_DB", 0),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			PoolSize:        getIntEnv("REDIS_POOL_SIZE", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	applyEnvironmentDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvironmentDefaults fills in pool sizes and thresholds suited to the
// deployment environment when they were not set explicitly.
func applyEnvironmentDefaults(cfg *Config) {
	db := &cfg.Database

	switch cfg.Server.Environment {
	case "production":
		if db.MaxOpenConns == 0 {
			db.MaxOpenConns = 50
		}
		if db.MaxIdleConns == 0 {
			db.MaxIdleConns = 20
		}
		if db.ConnMaxLifetime == 0 {
			db.ConnMaxLifetime = 15 * time.Minute
		}
		if db.SlowQueryThreshold == 0 {
			db.SlowQueryThreshold = 200 * time.Millisecond
		}
	default: // development, staging
		if db.MaxOpenConns == 0 {
			db.MaxOpenConns = 10
		}
		if db.MaxIdleConns == 0 {
			db.MaxIdleConns = 5
		}
		if db.ConnMaxLifetime == 0 {
			db.ConnMaxLifetime = 5 * time.Minute
		}
		if db.SlowQueryThreshold == 0 {
			db.SlowQueryThreshold = 50 * time.Millisecond
		}
	}

	if db.MaxIdleConns > db.MaxOpenConns {
		db.MaxIdleConns = db.MaxOpenConns
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" && c.Server.Environment == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Cache.Provider != "memory" && c.Cache.Provider != "redis" {
		return fmt.Errorf("CACHE_PROVIDER must be 'memory' or 'redis', got %q", c.Cache.Provider)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ===============================
// ENV HELPERS
// ===============================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getSliceEnv(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
