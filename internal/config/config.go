package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for bridge-console
type Config struct {
	Server   ServerConfig
	Scenario ScenarioConfig
	Stations StationsConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	History  HistoryConfig
	Cleanup  CleanupConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ScenarioConfig describes where the scenario document comes from
type ScenarioConfig struct {
	URL          string
	FetchTimeout time.Duration
}

// StationsConfig points at an optional station layout file
type StationsConfig struct {
	File string
}

// DatabaseConfig holds PostgreSQL configuration. An empty DSN disables load history.
type DatabaseConfig struct {
	DSN           string
	MigrationsDir string
	MaxConns      int
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// RedisConfig holds Redis configuration. An empty address disables snapshots.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled reports whether Redis is configured
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// AuthConfig holds the optional static API key
type AuthConfig struct {
	APIKey string
}

// HistoryConfig controls how long load records are kept
type HistoryConfig struct {
	Retention time.Duration
}

// CleanupConfig holds cleanup worker configuration
type CleanupConfig struct {
	Interval time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Scenario: ScenarioConfig{
			URL:          getEnv("SCENARIO_URL", "./scenarios/bridge.xml"),
			FetchTimeout: getEnvAsDuration("SCENARIO_FETCH_TIMEOUT", 10*time.Second),
		},
		Stations: StationsConfig{
			File: getEnv("STATIONS_FILE", ""),
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DATABASE_DSN", ""),
			MigrationsDir: getEnv("DATABASE_MIGRATIONS_DIR", "./migrations"),
			MaxConns:      getEnvAsInt("DATABASE_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		History: HistoryConfig{
			Retention: getEnvAsDuration("HISTORY_RETENTION", 7*24*time.Hour),
		},
		Cleanup: CleanupConfig{
			Interval: getEnvAsDuration("CLEANUP_INTERVAL", time.Hour),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if strings.TrimSpace(c.Scenario.URL) == "" {
		return fmt.Errorf("scenario URL is required")
	}

	if c.Scenario.FetchTimeout <= 0 {
		return fmt.Errorf("invalid scenario fetch timeout: %s", c.Scenario.FetchTimeout)
	}

	if c.Database.Enabled() {
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("invalid database max conns: %d", c.Database.MaxConns)
		}
		if c.History.Retention <= 0 {
			return fmt.Errorf("invalid history retention: %s", c.History.Retention)
		}
		if c.Cleanup.Interval <= 0 {
			return fmt.Errorf("invalid cleanup interval: %s", c.Cleanup.Interval)
		}
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps LOG_LEVEL onto a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", level)
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
