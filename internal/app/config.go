package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string        `default:"0.0.0.0:8080" usage:"API server listen address"`
	Storage      string        `default:"postgres" usage:"Storage backend: postgres or memory"`
	DatabaseURL  string        `usage:"PostgreSQL connection URL (SHOP_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	ImageBaseURL string        `default:"" usage:"Base URL for product images (e.g. https://cdn.example.com)" flag:"image-base-url"`
	JWTSecret    string        `usage:"HMAC secret for shopper bearer tokens (SHOP_JWT_SECRET)" flag:"jwt-secret"`
	TokenTTL     time.Duration `default:"24h" usage:"Lifetime of issued shopper tokens" flag:"token-ttl"`
	APIKeyPepper string        `usage:"HMAC pepper for API key hashing (SHOP_API_KEY_PEPPER)" flag:"api-key-pepper"`
	// OperatorAPIKey seeds an all-scope operator key in memory mode.
	OperatorAPIKey string `usage:"Operator API key for the memory backend" flag:"operator-api-key"`
	Pricing        PricingConfig
	Kafka          KafkaConfig
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	Graceful       GracefulConfig
}

// PricingConfig selects the currency and shipping policy.
type PricingConfig struct {
	Currency              string `default:"VND" usage:"ISO 4217 currency code"`
	MinorUnits            int32  `default:"0" usage:"Decimal places of the currency's minor unit" flag:"minor-units"`
	FreeShippingThreshold string `default:"1000000" usage:"Amount after discount from which shipping is free" flag:"free-shipping-threshold"`
	FlatShippingRate      string `default:"30000" usage:"Shipping price below the threshold" flag:"flat-shipping-rate"`
	// TotalTolerance defaults to half a minor unit when empty.
	TotalTolerance string `default:"" usage:"Accepted difference between client and server totals" flag:"total-tolerance"`
}

// KafkaConfig controls order event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers []string      `usage:"Kafka bootstrap brokers"`
	Topic   string        `default:"orders" usage:"Topic for order lifecycle events"`
	Timeout time.Duration `default:"2s" usage:"Upper bound on publishing one event after commit"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max      int           `default:"100" usage:"Max requests per window"`
	WriteMax int           `default:"20"  usage:"Max mutating requests per window" flag:"write-max"`
	Window   time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL is required: set SHOP_DATABASE_URL or DATABASE_URL")
		}
	case StorageMemory:
	default:
		return errors.Errorf("unknown storage %q", c.Storage)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required: set SHOP_JWT_SECRET")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return errors.New("kafka topic is required when brokers are set")
	}
	if _, err := c.Pricing.Calculator(); err != nil {
		return errors.Wrap(err, "pricing")
	}
	if _, err := c.Pricing.Tolerance(); err != nil {
		return errors.Wrap(err, "pricing")
	}
	return nil
}

// Policy returns the configured currency policy.
func (p PricingConfig) Policy() money.Policy {
	return money.Policy{Currency: p.Currency, MinorUnits: p.MinorUnits}
}

// Calculator builds the pricing calculator for the configured policy.
func (p PricingConfig) Calculator() (*pricing.Calculator, error) {
	threshold, err := money.Parse(p.FreeShippingThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "free shipping threshold")
	}
	rate, err := money.Parse(p.FlatShippingRate)
	if err != nil {
		return nil, errors.Wrap(err, "flat shipping rate")
	}
	return pricing.NewCalculator(p.Policy(), pricing.ShippingPolicy{
		FreeThreshold: threshold,
		FlatRate:      rate,
	})
}

// Tolerance returns the configured total tolerance, zero meaning the
// service default.
func (p PricingConfig) Tolerance() (money.Money, error) {
	if p.TotalTolerance == "" {
		return money.Zero, nil
	}
	t, err := money.Parse(p.TotalTolerance)
	if err != nil {
		return money.Zero, errors.Wrap(err, "total tolerance")
	}
	return t, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's SHOP_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
