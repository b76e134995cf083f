package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	// PaginationMode is "paged" (Prev/Next) or "loadmore".
	PaginationMode   string `envconfig:"PAGINATION_MODE" default:"paged"`
	SessionCacheSize int    `envconfig:"SESSION_CACHE_SIZE" default:"1024"`

	OMDb struct {
		APIKey    string  `envconfig:"OMDB_API_KEY"`
		BaseURL   string  `envconfig:"OMDB_BASE_URL" default:"https://www.omdbapi.com"`
		Timeout   int     `envconfig:"OMDB_TIMEOUT" default:"10"`
		RateLimit float64 `envconfig:"OMDB_RATE_LIMIT" default:"5"`
		CacheSize int     `envconfig:"OMDB_CACHE_SIZE" default:"256"`
		CacheTTL  int     `envconfig:"OMDB_CACHE_TTL" default:"600"`
	}

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// Validate checks the settings the search server cannot run without.
func (c *Config) Validate() error {
	if c.OMDb.APIKey == "" {
		return errors.New("OMDB_API_KEY is required")
	}
	return nil
}

func (c *Config) OMDbTimeout() time.Duration {
	return time.Duration(c.OMDb.Timeout) * time.Second
}

func (c *Config) OMDbCacheTTL() time.Duration {
	return time.Duration(c.OMDb.CacheTTL) * time.Second
}

// DatabaseEnabled reports whether a search log database is configured.
func (c *Config) DatabaseEnabled() bool {
	return c.DB.Host != ""
}
