package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Storage:   StorageMemory,
		JWTSecret: "secret",
		Pricing: PricingConfig{
			Currency:              "VND",
			FreeShippingThreshold: "1000000",
			FlatShippingRate:      "30000",
		},
		Kafka: KafkaConfig{Topic: "orders"},
	}
}

func TestConfigValidate(t *testing.T) {
	for _, tt := range []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "PostgresNeedsURL", mutate: func(c *Config) { c.Storage = StoragePostgres }, errMsg: "database URL"},
		{name: "PostgresWithURL", mutate: func(c *Config) {
			c.Storage = StoragePostgres
			c.DatabaseURL = "postgres://localhost/shop"
		}},
		{name: "UnknownStorage", mutate: func(c *Config) { c.Storage = "redis" }, errMsg: "unknown storage"},
		{name: "NoSecret", mutate: func(c *Config) { c.JWTSecret = "" }, errMsg: "jwt secret"},
		{name: "KafkaNoTopic", mutate: func(c *Config) {
			c.Kafka = KafkaConfig{Brokers: []string{"localhost:9092"}}
		}, errMsg: "kafka topic"},
		{name: "BadThreshold", mutate: func(c *Config) { c.Pricing.FreeShippingThreshold = "lots" }, errMsg: "threshold"},
		{name: "FractionalRateForVND", mutate: func(c *Config) { c.Pricing.FlatShippingRate = "30000.5" }, errMsg: "flatRate"},
		{name: "BadTolerance", mutate: func(c *Config) { c.Pricing.TotalTolerance = "x" }, errMsg: "tolerance"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPricingConfig(t *testing.T) {
	p := PricingConfig{Currency: "USD", MinorUnits: 2, FreeShippingThreshold: "50", FlatShippingRate: "4.99"}
	calc, err := p.Calculator()
	require.NoError(t, err)
	assert.Equal(t, "USD", calc.Policy().Currency)

	tol, err := p.Tolerance()
	require.NoError(t, err)
	assert.True(t, tol.IsZero())

	p.TotalTolerance = "0.01"
	tol, err = p.Tolerance()
	require.NoError(t, err)
	assert.Equal(t, "0.01", tol.String())
}

func TestApplyPlatformDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://platform/db")
	t.Setenv("PORT", "9000")

	cfg := Config{Addr: "0.0.0.0:8080"}
	cfg.applyPlatformDefaults()
	assert.Equal(t, "postgres://platform/db", cfg.DatabaseURL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)

	cfg = Config{Addr: "127.0.0.1:1", DatabaseURL: "postgres://explicit/db"}
	cfg.applyPlatformDefaults()
	assert.Equal(t, "postgres://explicit/db", cfg.DatabaseURL)
	assert.Equal(t, "127.0.0.1:1", cfg.Addr)
}
