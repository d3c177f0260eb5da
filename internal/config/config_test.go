package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Fluxo", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.ExchangeRate.TTL)
	assert.True(t, decimal.RequireFromString("96.4").Equal(cfg.ExchangeRate.Fallback))
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:@localhost:5432/fluxo?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "ledger")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.fluxo.al,http://localhost:3000")
	t.Setenv("EXCHANGE_RATE_FALLBACK", "100.25")
	t.Setenv("DASHBOARD_CACHE_TTL", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://app.fluxo.al", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, decimal.RequireFromString("100.25").Equal(cfg.ExchangeRate.Fallback))
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
	assert.Contains(t, cfg.ConnectionString(), "/ledger?sslmode=require")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_TTL", "a day")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_CheckAuth(t *testing.T) {
	var cfg config.Config

	cfg.Auth.JWTSecret = "short"
	assert.Error(t, cfg.CheckAuth())

	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.CheckAuth())
}
