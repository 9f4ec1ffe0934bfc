package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"CASHBOARD_APP_NAME":                  os.Getenv("CASHBOARD_APP_NAME"),
		"CASHBOARD_APP_ENV":                   os.Getenv("CASHBOARD_APP_ENV"),
		"CASHBOARD_APP_PORT":                  os.Getenv("CASHBOARD_APP_PORT"),
		"CASHBOARD_DATABASE_HOST":             os.Getenv("CASHBOARD_DATABASE_HOST"),
		"CASHBOARD_DATABASE_PORT":             os.Getenv("CASHBOARD_DATABASE_PORT"),
		"CASHBOARD_DATABASE_PASSWORD":         os.Getenv("CASHBOARD_DATABASE_PASSWORD"),
		"CASHBOARD_DATABASE_MAX_IDLE_CONNS":   os.Getenv("CASHBOARD_DATABASE_MAX_IDLE_CONNS"),
		"CASHBOARD_DATABASE_MAX_OPEN_CONNS":   os.Getenv("CASHBOARD_DATABASE_MAX_OPEN_CONNS"),
		"CASHBOARD_JWT_SECRET":                os.Getenv("CASHBOARD_JWT_SECRET"),
		"CASHBOARD_DASHBOARD_TRAILING_MONTHS": os.Getenv("CASHBOARD_DASHBOARD_TRAILING_MONTHS"),
		"CASHBOARD_DASHBOARD_TOP_CATEGORIES":  os.Getenv("CASHBOARD_DASHBOARD_TOP_CATEGORIES"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cashboard-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "cashboard", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 6, cfg.Dashboard.TrailingMonths)
		assert.Equal(t, 8, cfg.Dashboard.TopCategories)
		assert.Equal(t, 60*time.Second, cfg.Dashboard.CacheTTL)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("CASHBOARD_APP_NAME", "test-app")
		os.Setenv("CASHBOARD_APP_PORT", "9000")
		os.Setenv("CASHBOARD_DATABASE_HOST", "testdb.local")
		os.Setenv("CASHBOARD_DATABASE_PORT", "5433")
		os.Setenv("CASHBOARD_DASHBOARD_TRAILING_MONTHS", "12")
		os.Setenv("CASHBOARD_DASHBOARD_TOP_CATEGORIES", "3")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 12, cfg.Dashboard.TrailingMonths)
		assert.Equal(t, 3, cfg.Dashboard.TopCategories)
	})

	t.Run("rejects idle conns exceeding open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("CASHBOARD_DATABASE_MAX_OPEN_CONNS", "5")
		os.Setenv("CASHBOARD_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("CASHBOARD_APP_ENV", "production")
		os.Setenv("CASHBOARD_JWT_SECRET", "short")
		os.Setenv("CASHBOARD_DATABASE_PASSWORD", "secret")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "cashboard",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word") // escaped
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
