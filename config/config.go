package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultSecretsDir = "/run/secrets"

// Database drivers understood by database.New
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	LogLevel        slog.Level

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Identity provider session tokens
	IdentitySecret string
	IdentityIssuer string

	// Rate limiting for recipe mutations
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Recipe image storage. Images are disabled when S3Bucket is empty.
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance with values from environment
// variables, Docker secrets, and defaults, in that order of precedence.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	l := newLoader()

	cfg := &Config{
		Environment: env,
		ServerHost:  l.str("SERVER_HOST", "0.0.0.0"),
		ServerPort:  l.str("SERVER_PORT", "8080"),
		CORSOrigins: splitList(l.str("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		DBDriver:   strings.ToLower(l.str("DB_DRIVER", DriverPostgres)),
		DBHost:     l.str("DB_HOST", "localhost"),
		DBPort:     l.str("DB_PORT", "5432"),
		DBUser:     l.str("DB_USER", "postgres"),
		DBPassword: l.str("DB_PASSWORD", ""),
		DBName:     l.str("DB_NAME", "recipes"),
		DBSSLMode:  l.str("DB_SSL_MODE", "disable"),
		SQLitePath: l.str("SQLITE_PATH", "recipes.db"),

		RedisURL:      l.str("REDIS_URL", ""),
		RedisHost:     l.str("REDIS_HOST", ""),
		RedisPort:     l.str("REDIS_PORT", "6379"),
		RedisPassword: l.str("REDIS_PASSWORD", ""),

		IdentitySecret: l.str("IDENTITY_JWT_SECRET", ""),
		IdentityIssuer: l.str("IDENTITY_ISSUER", ""),

		S3Bucket:  l.str("S3_BUCKET_NAME", ""),
		AWSRegion: l.str("AWS_REGION", "us-east-1"),
	}

	cfg.RedisDB = l.integer("REDIS_DB", 0)
	cfg.RateLimitMax = l.integer("RATE_LIMIT_MAX", 30)
	cfg.RequestTimeout = l.duration("REQUEST_TIMEOUT", 10*time.Second)
	cfg.ShutdownTimeout = l.duration("SHUTDOWN_TIMEOUT", 15*time.Second)
	cfg.RateLimitWindow = l.duration("RATE_LIMIT_WINDOW", time.Minute)
	cfg.LogLevel = l.level("LOG_LEVEL", slog.LevelInfo)

	if len(l.errs) > 0 {
		return nil, fmt.Errorf("failed to load %s configuration: %s", env, strings.Join(l.errs, "; "))
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the libpq-style connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ImagesEnabled reports whether recipe image uploads can be served.
func (c *Config) ImagesEnabled() bool {
	return c.S3Bucket != ""
}

// loader resolves keys and collects parse errors so all of them are reported at once.
type loader struct {
	secretsDir string
	errs       []string
}

func newLoader() *loader {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = defaultSecretsDir
	}
	return &loader{secretsDir: dir}
}

func (l *loader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := readSecret(l.secretsDir, strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

func (l *loader) integer(key string, def int) int {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return def
	}
	return n
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s must be a duration, got %q", key, raw))
		return def
	}
	return d
}

func (l *loader) level(key string, def slog.Level) slog.Level {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s must be a log level, got %q", key, raw))
		return def
	}
	return lvl
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
