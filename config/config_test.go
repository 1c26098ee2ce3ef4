package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty secrets directory and clears the
// variables these tests care about.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	for _, name := range []string{
		"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "SQLITE_PATH",
		"REDIS_HOST", "REDIS_URL", "JWT_SECRET", "CATALOG_SOURCE", "CATALOG_PATH",
		"CATALOG_S3_BUCKET", "CATALOG_S3_KEY", "CATALOG_REFRESH_SCHEDULE", "RANKER_MODE",
		"DEFAULT_TOP_N", "MAX_TOP_N", "RATE_LIMIT_PER_MINUTE", "CORS_ORIGINS",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, CatalogSourceFile, cfg.CatalogSource)
	assert.Equal(t, "recipes.csv", cfg.CatalogPath)
	assert.Equal(t, RankerModeIndexed, cfg.RankerMode)
	assert.Equal(t, 5, cfg.DefaultTopN)
	assert.Equal(t, 50, cfg.MaxTopN)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_SOURCE", "database")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RANKER_MODE", "per_request")
	t.Setenv("DEFAULT_TOP_N", "3")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, CatalogSourceDatabase, cfg.CatalogSource)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, RankerModePerRequest, cfg.RankerMode)
	assert.Equal(t, 3, cfg.DefaultTopN)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigReadsSecretsAsFallback(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("secret-pass"), 0o600))
	t.Setenv("DB_PASSWORD", "env-pass")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "env-pass", cfg.DBPassword)
}

func TestLoadConfigProductionPrefersSecrets(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "env-secret")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("docker-secret"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "docker-secret", cfg.JWTSecret)
}

func TestLoadConfigRejectsBadInteger(t *testing.T) {
	isolate(t)
	t.Setenv("MAX_TOP_N", "lots")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MAX_TOP_N must be an integer")
}

func TestValidateConfig(t *testing.T) {
	isolate(t)

	valid := func() *Config {
		return &Config{
			ServerPort:    "8080",
			CatalogSource: CatalogSourceFile,
			CatalogPath:   "recipes.csv",
			RankerMode:    RankerModeIndexed,
			DefaultTopN:   5,
			MaxTopN:       50,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad port", func(c *Config) { c.ServerPort = "http" }, "SERVER_PORT"},
		{"unknown source", func(c *Config) { c.CatalogSource = "ftp" }, "CATALOG_SOURCE"},
		{"file without path", func(c *Config) { c.CatalogPath = "" }, "CATALOG_PATH"},
		{"s3 without bucket", func(c *Config) { c.CatalogSource = CatalogSourceS3; c.CatalogKey = "k" }, "CATALOG_S3_BUCKET"},
		{"database without host", func(c *Config) {
			c.CatalogSource = CatalogSourceDatabase
			c.DBPort, c.DBUser, c.DBName = "5432", "u", "n"
		}, "DB_HOST"},
		{"bad schedule", func(c *Config) { c.CatalogRefreshSchedule = "every tuesday" }, "CATALOG_REFRESH_SCHEDULE"},
		{"bad mode", func(c *Config) { c.RankerMode = "magic" }, "RANKER_MODE"},
		{"zero default", func(c *Config) { c.DefaultTopN = 0 }, "DEFAULT_TOP_N"},
		{"default above max", func(c *Config) { c.DefaultTopN = 80 }, "DEFAULT_TOP_N"},
		{"negative rate", func(c *Config) { c.RateLimitPerMinute = -1 }, "RATE_LIMIT_PER_MINUTE"},
	}

	require.NoError(t, ValidateConfig(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			fields := make([]string, len(errs))
			for i, e := range errs {
				fields[i] = e.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateConfigSQLiteSkipsPostgresSettings(t *testing.T) {
	isolate(t)
	cfg := &Config{
		ServerPort:    "8080",
		CatalogSource: CatalogSourceDatabase,
		SQLitePath:    "recipes.db",
		RankerMode:    RankerModeIndexed,
		DefaultTopN:   5,
		MaxTopN:       50,
	}
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfigProductionNeedsJWTSecret(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")
	cfg := &Config{
		ServerPort:    "8080",
		CatalogSource: CatalogSourceFile,
		CatalogPath:   "recipes.csv",
		RankerMode:    RankerModeIndexed,
		DefaultTopN:   5,
		MaxTopN:       50,
	}
	assert.ErrorContains(t, ValidateConfig(cfg), "JWT_SECRET")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
