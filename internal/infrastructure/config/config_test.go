package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvKeys = []string{
	"IDEAGEN_APP_NAME",
	"IDEAGEN_APP_ENV",
	"IDEAGEN_APP_PORT",
	"IDEAGEN_DATABASE_DRIVER",
	"IDEAGEN_DATABASE_HOST",
	"IDEAGEN_DATABASE_PORT",
	"IDEAGEN_DATABASE_USER",
	"IDEAGEN_DATABASE_PASSWORD",
	"IDEAGEN_DATABASE_DBNAME",
	"IDEAGEN_DATABASE_SSLMODE",
	"IDEAGEN_DATABASE_PATH",
	"IDEAGEN_DATABASE_MAX_OPEN_CONNS",
	"IDEAGEN_DATABASE_MAX_IDLE_CONNS",
	"IDEAGEN_REDIS_ENABLED",
	"IDEAGEN_REDIS_TTL",
	"IDEAGEN_HTTP_CORS_ALLOW_ORIGINS",
	"IDEAGEN_HTTP_RATE_LIMIT_ENABLED",
	"IDEAGEN_HTTP_RATE_LIMIT_REQUESTS",
	"IDEAGEN_HTTP_RATE_LIMIT_WINDOW",
	"IDEAGEN_SWAGGER_ENABLED",
	"IDEAGEN_TELEMETRY_SAMPLING_RATIO",
	"IDEAGEN_TELEMETRY_DB_LOG_FULL_SQL",
}

// isolateEnv clears every key the tests touch and restores the originals afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(testEnvKeys))
	for _, k := range testEnvKeys {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "ideagen-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "ideagen", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "ideagen.db", cfg.Database.Path)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, time.Hour, cfg.Redis.TTL)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.HTTP.CORSAllowMethods)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "ideagen-backend", cfg.Telemetry.ServiceName)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)
		assert.Empty(t, cfg.Swagger.AllowedIPs)
	})

	t.Run("loads values from environment variables with IDEAGEN prefix", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_APP_NAME", "test-app")
		os.Setenv("IDEAGEN_APP_ENV", "testing")
		os.Setenv("IDEAGEN_APP_PORT", "9000")
		os.Setenv("IDEAGEN_DATABASE_HOST", "testdb.local")
		os.Setenv("IDEAGEN_DATABASE_PORT", "5433")
		os.Setenv("IDEAGEN_DATABASE_USER", "testuser")
		os.Setenv("IDEAGEN_DATABASE_PASSWORD", "testpass")
		os.Setenv("IDEAGEN_DATABASE_DBNAME", "testdb")
		os.Setenv("IDEAGEN_DATABASE_SSLMODE", "require")
		os.Setenv("IDEAGEN_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("IDEAGEN_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("IDEAGEN_REDIS_ENABLED", "true")
		os.Setenv("IDEAGEN_REDIS_TTL", "10m")

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	})

	t.Run("reads config.toml and lets env override it", func(t *testing.T) {
		isolateEnv(t)
		dir := t.TempDir()
		content := `
[app]
name = "from-file"

[database]
driver = "sqlite"
path = "ideas.db"

[http]
cors_allow_origins = ["http://localhost:3000"]

[swagger]
enabled = true
allowed_ips = ["127.0.0.1", "10.0.0.0/8"]
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
		os.Setenv("IDEAGEN_APP_NAME", "from-env")

		cfg, err := LoadFrom(dir)
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.App.Name)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "ideas.db", cfg.Database.Path)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSAllowOrigins)
		assert.True(t, cfg.Swagger.Enabled)
		assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.Swagger.AllowedIPs)
	})

	t.Run("fails on malformed config file", func(t *testing.T) {
		isolateEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[app\nname="), 0o600))

		_, err := LoadFrom(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_DRIVER", "mongodb")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("driver name is case insensitive", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_DRIVER", "SQLite")

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("IDEAGEN_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects zero MaxOpenConns", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_MAX_OPEN_CONNS", "0")
		os.Setenv("IDEAGEN_DATABASE_MAX_IDLE_CONNS", "0")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_open_conns must be positive")
	})

	t.Run("reports every problem", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_DRIVER", "mongodb")
		os.Setenv("IDEAGEN_REDIS_TTL", "-1s")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
		assert.Contains(t, err.Error(), "redis.ttl")
	})

	t.Run("rejects non-positive rate limit when enabled", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_HTTP_RATE_LIMIT_ENABLED", "true")
		os.Setenv("IDEAGEN_HTTP_RATE_LIMIT_WINDOW", "0s")
		os.Setenv("IDEAGEN_HTTP_RATE_LIMIT_REQUESTS", "0")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http.rate_limit_window must be positive")
		assert.Contains(t, err.Error(), "http.rate_limit_requests must be positive")
	})

	t.Run("ignores rate limit settings when disabled", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_HTTP_RATE_LIMIT_ENABLED", "false")
		os.Setenv("IDEAGEN_HTTP_RATE_LIMIT_WINDOW", "0s")

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
		assert.False(t, cfg.HTTP.RateLimitEnabled)
	})

	t.Run("zero sampling ratio is kept", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_TELEMETRY_SAMPLING_RATIO", "0")

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, cfg.Telemetry.SamplingRatio)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("validates negative redis ttl", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_REDIS_TTL", "-5s")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis.ttl")
	})

	t.Run("validates sampling ratio range", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func() {
		os.Setenv("IDEAGEN_APP_ENV", "production")
		os.Setenv("IDEAGEN_DATABASE_PASSWORD", "secure-password")
		os.Setenv("IDEAGEN_DATABASE_SSLMODE", "require")
		os.Setenv("IDEAGEN_SWAGGER_ENABLED", "false")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Unsetenv("IDEAGEN_DATABASE_PASSWORD")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("IDEAGEN_DATABASE_SSLMODE", "disable")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("sqlite skips postgres credential checks", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("IDEAGEN_APP_ENV", "production")
		os.Setenv("IDEAGEN_DATABASE_DRIVER", "sqlite")

		_, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("IDEAGEN_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins cannot be '*'")
	})

	t.Run("rejects swagger in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("IDEAGEN_SWAGGER_ENABLED", "true")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger.enabled must be false in production")
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("IDEAGEN_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("builds postgres url", func(t *testing.T) {
		d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "ideagen", SSLMode: "disable"}
		assert.Equal(t, "postgres://app:secret@db:5432/ideagen?sslmode=disable", d.DSN())
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w:rd", DBName: "ideagen", SSLMode: "require"}
		dsn := d.DSN()
		assert.Contains(t, dsn, "p%40ss%2Fw%3Ard")
		assert.Contains(t, dsn, "sslmode=require")
	})
}
