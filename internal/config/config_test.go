package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYSHAP_WEBHOOK_SECRET", testWebhookSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "MSA", cfg.Order.NumberPrefix)
	assert.True(t, decimal.RequireFromString("0.15").Equal(cfg.Order.TaxRate))
	assert.True(t, decimal.NewFromInt(1000).Equal(cfg.Order.FreeShippingThreshold))
	assert.True(t, decimal.NewFromInt(150).Equal(cfg.Order.ShippingFee))
	assert.Equal(t, "Africa/Johannesburg", cfg.Order.Location.String())
	assert.Equal(t, 3, cfg.Order.MaxTxRetries)
	assert.Equal(t, 720*time.Hour, cfg.Cache.SessionTTL)
	assert.Equal(t, testWebhookSecret, cfg.Payment.WebhookSecret)
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("PAYSHAP_WEBHOOK_SECRET", testWebhookSecret)
	t.Setenv("ORDER_NUMBER_PREFIX", " abc ")
	t.Setenv("ORDER_TAX_RATE", "0.2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ABC", cfg.Order.NumberPrefix)
	assert.True(t, decimal.RequireFromString("0.2").Equal(cfg.Order.TaxRate))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "SERVER_READ_TIMEOUT", "soon"},
		{"bad tax rate", "ORDER_TAX_RATE", "fifteen"},
		{"negative fee", "ORDER_SHIPPING_FEE", "-1"},
		{"bad timezone", "ORDER_TIMEZONE", "Mars/Olympus"},
		{"prefix too long", "ORDER_NUMBER_PREFIX", "ABCD"},
		{"prefix too short", "ORDER_NUMBER_PREFIX", "AB"},
		{"prefix with digits", "ORDER_NUMBER_PREFIX", "A1B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PAYSHAP_WEBHOOK_SECRET", testWebhookSecret)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RequiresWebhookSecret(t *testing.T) {
	t.Setenv("PAYSHAP_WEBHOOK_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYSHAP_WEBHOOK_SECRET")
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDSN())
}
