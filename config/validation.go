package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		add("SERVER_PORT", "must be numeric, got %q", cfg.ServerPort)
	}

	switch cfg.CatalogSource {
	case CatalogSourceFile:
		if cfg.CatalogPath == "" {
			add("CATALOG_PATH", "is required when CATALOG_SOURCE=file")
		}
	case CatalogSourceS3:
		if cfg.CatalogBucket == "" {
			add("CATALOG_S3_BUCKET", "is required when CATALOG_SOURCE=s3")
		}
		if cfg.CatalogKey == "" {
			add("CATALOG_S3_KEY", "is required when CATALOG_SOURCE=s3")
		}
	case CatalogSourceDatabase:
		validateDatabase(cfg, env, add)
	default:
		add("CATALOG_SOURCE", "unknown source %q (want file, s3 or database)", cfg.CatalogSource)
	}

	if cfg.CatalogRefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.CatalogRefreshSchedule); err != nil {
			add("CATALOG_REFRESH_SCHEDULE", "invalid cron expression: %v", err)
		}
	}

	switch cfg.RankerMode {
	case RankerModeIndexed, RankerModePerRequest:
	default:
		add("RANKER_MODE", "unknown mode %q (want indexed or per_request)", cfg.RankerMode)
	}

	if cfg.DefaultTopN <= 0 {
		add("DEFAULT_TOP_N", "must be greater than zero")
	}
	if cfg.MaxTopN <= 0 {
		add("MAX_TOP_N", "must be greater than zero")
	}
	if cfg.DefaultTopN > cfg.MaxTopN {
		add("DEFAULT_TOP_N", "must not exceed MAX_TOP_N (%d)", cfg.MaxTopN)
	}
	if cfg.RateLimitPerMinute < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}

	// Admin endpoints are only mounted with a secret, but production must have them.
	if env == Production && cfg.JWTSecret == "" {
		add("JWT_SECRET", "jwt_secret secret is required in production")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDatabase(cfg *Config, env Environment, add func(field, format string, args ...interface{})) {
	if cfg.UsesSQLite() {
		return
	}
	required := map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_PORT": cfg.DBPort,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
	}
	for _, field := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"} {
		if required[field] == "" {
			add(field, "is required when CATALOG_SOURCE=database")
		}
	}
	if (env == CI || env == Production) && cfg.DBPassword == "" {
		add("DB_PASSWORD", "is required in %s", env)
	}
}
