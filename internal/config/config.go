package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// minSecretLen is the shortest HS256 secret accepted.
const minSecretLen = 32

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Fluxo"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host        string `envconfig:"DB_HOST" default:"localhost"`
		Port        int    `envconfig:"DB_PORT" default:"5432"`
		User        string `envconfig:"DB_USER" default:"postgres"`
		Password    string `envconfig:"DB_PASSWORD" default:""`
		Name        string `envconfig:"DB_NAME" default:"fluxo"`
		SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
		AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
		MaxUploadBytes  int64         `envconfig:"SERVER_MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Audience  string `envconfig:"AUTH_AUDIENCE" default:"authenticated"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	RateLimit struct {
		RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
		Burst int     `envconfig:"RATE_LIMIT_BURST" default:"30"`
	}

	ExchangeRate struct {
		URL      string          `envconfig:"EXCHANGE_RATE_URL" default:"https://www.bankofalbania.org/Tregjet/Kursi_zyrtar_i_kembimit/"`
		TTL      time.Duration   `envconfig:"EXCHANGE_RATE_TTL" default:"24h"`
		Timeout  time.Duration   `envconfig:"EXCHANGE_RATE_TIMEOUT" default:"10s"`
		Fallback decimal.Decimal `envconfig:"EXCHANGE_RATE_FALLBACK" default:"96.4"`
	}

	Dashboard struct {
		CacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"1m"`
	}

	TUI struct {
		OwnerID string `envconfig:"FLUXO_OWNER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// CheckAuth reports whether the API can verify access tokens.
func (c *Config) CheckAuth() error {
	if len(c.Auth.JWTSecret) < minSecretLen {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
