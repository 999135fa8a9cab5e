package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8082", cfg.HTTP.Port)
	assert.Equal(t, int32(20), cfg.Postgres.PoolMax)
	assert.Equal(t, 10*time.Minute, cfg.Redis.RateTTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.Orders.StrictStatus)
	assert.Equal(t, _localHandoffPhone, cfg.Handoff.Phone)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ORDER_STRICT_STATUS", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("HANDOFF_PHONE", "51987654321")
	t.Setenv("OTEL_EXPORTER_ENDPOINT", "jaeger:4318")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.True(t, cfg.Orders.StrictStatus)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "51987654321", cfg.Handoff.Phone)
	assert.Equal(t, "jaeger:4318", cfg.Tracing.Endpoint)
}

func TestLoadEnv_ValidationFails(t *testing.T) {
	t.Setenv("ENV", "moon")

	_, err := LoadEnv()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Env")
}

func TestLoadEnv_HandoffPhoneRequiredOutsideLocal(t *testing.T) {
	t.Setenv("ENV", "prod")

	_, err := LoadEnv()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "HANDOFF_PHONE")

	t.Setenv("HANDOFF_PHONE", "51987654321")
	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "51987654321", cfg.Handoff.Phone)
}

func TestLoadPath_MissingFile(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadPath_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=8181\nORDER_STRICT_STATUS=true\n"), 0o600))

	cfg, err := LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, "8181", cfg.HTTP.Port)
	assert.True(t, cfg.Orders.StrictStatus)
}
