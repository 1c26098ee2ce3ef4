package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogSourceFile     = "file"
	CatalogSourceS3       = "s3"
	CatalogSourceDatabase = "database"
)

// Ranker modes.
const (
	RankerModeIndexed    = "indexed"
	RankerModePerRequest = "per_request"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. SQLitePath, when set, replaces Postgres.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. Redis is optional; without it rate limiting is
	// kept in process.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration for the admin endpoints
	JWTSecret string

	// Catalog configuration
	CatalogSource          string
	CatalogPath            string
	CatalogBucket          string
	CatalogKey             string
	CatalogS3Endpoint      string
	AWSRegion              string
	CatalogRefreshSchedule string

	// Ranking configuration
	RankerMode  string
	DefaultTopN int
	MaxTopN     int

	// RateLimitPerMinute caps recommendation requests per client; 0 disables it.
	RateLimitPerMinute int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogDir    string
}

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// UsesSQLite reports whether the database layer should open SQLite.
func (c *Config) UsesSQLite() bool {
	return c.SQLitePath != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookup resolves one setting given its environment variable and secret names.
type lookup func(envVar, secret string) string

func fromEnv(envVar, _ string) string {
	return os.Getenv(envVar)
}

func fromEnvThenSecret(envVar, secret string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return readSecret(secret)
}

func fromSecretThenEnv(envVar, secret string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

// loadCIConfig loads configuration for CI environment using ONLY environment variables
func loadCIConfig(cfg *Config) error {
	return populate(cfg, fromEnv)
}

// loadDevConfig loads configuration for development and test. An optional
// .env file is read first; Docker secrets fill whatever is still unset.
func loadDevConfig(cfg *Config) error {
	_ = godotenv.Load()
	return populate(cfg, fromEnvThenSecret)
}

// loadProdConfig loads configuration for production, preferring Docker secrets
func loadProdConfig(cfg *Config) error {
	return populate(cfg, fromSecretThenEnv)
}

func populate(cfg *Config, get lookup) error {
	str := func(envVar, secret, def string) string {
		if v := strings.TrimSpace(get(envVar, secret)); v != "" {
			return v
		}
		return def
	}

	var errs []string
	num := func(envVar, secret string, def int) int {
		raw := str(envVar, secret, "")
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be an integer, got %q", envVar, raw))
			return def
		}
		return n
	}

	cfg.ServerPort = str("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = str("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.CORSOrigins = splitList(str("CORS_ORIGINS", "cors_origins", "http://localhost:5173,http://frontend:5173"))

	cfg.DBHost = str("DB_HOST", "db_host", "")
	cfg.DBPort = str("DB_PORT", "db_port", "5432")
	cfg.DBUser = str("DB_USER", "db_user", "")
	cfg.DBPassword = str("DB_PASSWORD", "db_password", "")
	cfg.DBName = str("DB_NAME", "db_name", "")
	cfg.DBSSLMode = str("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.SQLitePath = str("SQLITE_PATH", "sqlite_path", "")

	cfg.RedisHost = str("REDIS_HOST", "redis_host", "")
	cfg.RedisPort = str("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = str("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisDB = num("REDIS_DB", "redis_db", 0)
	cfg.RedisURL = str("REDIS_URL", "redis_url", "")

	cfg.JWTSecret = str("JWT_SECRET", "jwt_secret", "")

	cfg.CatalogSource = strings.ToLower(str("CATALOG_SOURCE", "catalog_source", CatalogSourceFile))
	cfg.CatalogPath = str("CATALOG_PATH", "catalog_path", "recipes.csv")
	cfg.CatalogBucket = str("CATALOG_S3_BUCKET", "catalog_s3_bucket", "")
	cfg.CatalogKey = str("CATALOG_S3_KEY", "catalog_s3_key", "recipes.csv")
	cfg.CatalogS3Endpoint = str("CATALOG_S3_ENDPOINT", "catalog_s3_endpoint", "")
	cfg.AWSRegion = str("AWS_REGION", "aws_region", "")
	cfg.CatalogRefreshSchedule = str("CATALOG_REFRESH_SCHEDULE", "catalog_refresh_schedule", "")

	cfg.RankerMode = strings.ToLower(str("RANKER_MODE", "ranker_mode", RankerModeIndexed))
	cfg.DefaultTopN = num("DEFAULT_TOP_N", "default_top_n", 5)
	cfg.MaxTopN = num("MAX_TOP_N", "max_top_n", 50)
	cfg.RateLimitPerMinute = num("RATE_LIMIT_PER_MINUTE", "rate_limit_per_minute", 60)

	cfg.LogLevel = str("LOG_LEVEL", "log_level", "info")
	cfg.LogFormat = str("LOG_FORMAT", "log_format", "json")
	cfg.LogDir = str("LOG_DIR", "log_dir", "")

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
