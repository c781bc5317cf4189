package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	// Pricing constants. They are configuration rather than package globals
	// so tests and deployments can vary them without touching code.
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
	CurrencyCode string

	ProductCacheTTL time.Duration
	RateLimit       string
	AdminToken      string
	RunMigrations   bool
	MigrationsPath  string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	taxRate, err := parseDecimal(k.String("TAX_RATE"), "0")
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}
	shippingCost, err := parseDecimal(k.String("SHIPPING_COST"), "0")
	if err != nil {
		return nil, fmt.Errorf("SHIPPING_COST: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		TaxRate:            taxRate,
		ShippingCost:       shippingCost,
		CurrencyCode:       valueOrDefault(k.String("CURRENCY_CODE"), "MXN"),
		ProductCacheTTL:    parseDuration(k.String("PRODUCT_CACHE_TTL"), "2m"),
		RateLimit:          valueOrDefault(k.String("RATE_LIMIT"), "120-M"),
		AdminToken:         strings.TrimSpace(k.String("ADMIN_TOKEN")),
		RunMigrations:      parseBool(k.String("RUN_MIGRATIONS")),
		MigrationsPath:     valueOrDefault(k.String("MIGRATIONS_PATH"), "migrations"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.TaxRate.IsNegative() {
		return nil, errors.New("TAX_RATE must not be negative")
	}
	if cfg.ShippingCost.IsNegative() {
		return nil, errors.New("SHIPPING_COST must not be negative")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseDecimal(value, fallback string) (decimal.Decimal, error) {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	return decimal.NewFromString(base)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
