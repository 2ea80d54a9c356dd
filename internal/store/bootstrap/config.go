package bootstrap

import (
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type ShopConfig struct {
	HttpPort    string `envconfig:"HTTP_PORT" default:":8080"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DbSettings   database.PostgresSettings
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"3s"`

	JwtSecret      string  `envconfig:"JWT_SECRET" required:"true"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"5"`

	TaxPercent      int64         `envconfig:"TAX_PERCENT" default:"0"`
	BridgeURL       string        `envconfig:"BRIDGE_URL" required:"true"`
	RetractAfter    time.Duration `envconfig:"RETRACT_AFTER" default:"10m"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"5m"`
}

func LoadConfig() (ShopConfig, error) {
	var cfg ShopConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ShopConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return ShopConfig{}, err
	}

	return cfg, nil
}

func (c ShopConfig) Validate() error {
	switch {
	case c.JwtSecret == "":
		return fmt.Errorf("jwt secret must be set")
	case c.BridgeURL == "":
		return fmt.Errorf("bridge url must be set")
	case c.StoreDriver != DriverPostgres && c.StoreDriver != DriverMemory:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	case c.TaxPercent < 0:
		return fmt.Errorf("tax percent must not be negative, got %d", c.TaxPercent)
	case c.TaxPercent > domain.MaxTaxPercent:
		return fmt.Errorf("tax percent must not exceed %d, got %d", domain.MaxTaxPercent, c.TaxPercent)
	case c.StoreTimeout <= 0:
		return fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout)
	case c.RefreshInterval <= 0:
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	case c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0:
		return fmt.Errorf("rate limit must be positive, got %v rps with burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}
