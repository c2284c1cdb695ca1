package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv() {
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	os.Setenv("SUPABASE_URL", "https://project.supabase.co")
	os.Setenv("SUPABASE_ANON_KEY", "anon_key")
	os.Setenv("WHATSAPP_PHONE", "573014610269")
}

func unsetRequiredEnv() {
	os.Unsetenv("REDIS_URL")
	os.Unsetenv("SUPABASE_URL")
	os.Unsetenv("SUPABASE_ANON_KEY")
	os.Unsetenv("WHATSAPP_PHONE")
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("SHIPPING_FEE")
	os.Unsetenv("FREE_SHIPPING_THRESHOLD")
	os.Unsetenv("CART_TTL_HOURS")

	setRequiredEnv()
	defer unsetRequiredEnv()

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, float64(15000), cfg.Checkout.ShippingFee)
	assert.Equal(t, float64(100000), cfg.Checkout.FreeShippingThreshold)
	assert.Equal(t, 72, cfg.Checkout.CartTTLHours)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SHIPPING_FEE", "12000")
	os.Setenv("FREE_SHIPPING_THRESHOLD", "50000")
	setRequiredEnv()
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SHIPPING_FEE")
		os.Unsetenv("FREE_SHIPPING_THRESHOLD")
		unsetRequiredEnv()
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "anon_key", cfg.Supabase.AnonKey)
	assert.Equal(t, float64(12000), cfg.Checkout.ShippingFee)
	assert.Equal(t, float64(50000), cfg.Checkout.FreeShippingThreshold)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
REDIS_URL=redis://staging:6379
SUPABASE_URL=https://staging.supabase.co
SUPABASE_ANON_KEY=staging_key
WHATSAPP_PHONE=573001112233
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "573001112233", cfg.Checkout.WhatsAppPhone)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	unsetRequiredEnv()

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
