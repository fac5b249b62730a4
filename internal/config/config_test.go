package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.True(t, cfg.SessionCookieSecure)
}

func TestLoad_MissingBackendURL(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsUnparsableValue(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api")
	t.Setenv("HTTP_PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ParsesKafkaBrokers(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}
