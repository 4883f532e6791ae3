package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dataset source kinds
const (
	SourceFile       = "file"
	SourcePostgres   = "postgres"
	SourceMySQL      = "mysql"
	SourceClickHouse = "clickhouse"
)

type Config struct {
	// Server
	Port            int
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Datasets. An empty path with the file source selects the embedded sample data.
	ChecklistSource string
	MatchesSource   string
	ChecklistPath   string
	MatchesPath     string

	// Database URLs, required only by the sources that use them
	PostgresURL   string
	MySQLDSN      string
	ClickHouseURL string

	// Cache. Empty RedisURL disables caching.
	RedisURL string
	CacheTTL time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if a selected source is missing its connection settings.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvInt("PORT", 8080),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		ChecklistSource: strings.ToLower(getEnv("CHECKLIST_SOURCE", SourceFile)),
		MatchesSource:   strings.ToLower(getEnv("MATCHES_SOURCE", SourceFile)),
		ChecklistPath:   os.Getenv("CHECKLIST_PATH"),
		MatchesPath:     os.Getenv("MATCHES_PATH"),

		PostgresURL:   os.Getenv("POSTGRES_URL"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		ClickHouseURL: os.Getenv("CLICKHOUSE_URL"),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: getEnvDuration("CACHE_TTL", 10*time.Minute),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.ChecklistSource {
	case SourceFile, SourcePostgres, SourceMySQL:
	case SourceClickHouse:
		return fmt.Errorf("CHECKLIST_SOURCE=%s is not supported: the checklist is not stored in ClickHouse", c.ChecklistSource)
	default:
		return fmt.Errorf("unknown CHECKLIST_SOURCE %q", c.ChecklistSource)
	}
	switch c.MatchesSource {
	case SourceFile, SourcePostgres, SourceMySQL, SourceClickHouse:
	default:
		return fmt.Errorf("unknown MATCHES_SOURCE %q", c.MatchesSource)
	}

	// Critical configuration - fail if missing
	required := map[string]string{
		SourcePostgres:   "POSTGRES_URL",
		SourceMySQL:      "MYSQL_DSN",
		SourceClickHouse: "CLICKHOUSE_URL",
	}
	for _, kind := range []string{c.ChecklistSource, c.MatchesSource} {
		key, ok := required[kind]
		if !ok {
			continue
		}
		if _, err := getEnvRequired(key); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
