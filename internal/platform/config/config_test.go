package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com ,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("POSTING_RETRY_INTERVAL", "15s")
	t.Setenv("DELIVERY_MATCH_STRATEGY", "Nearest")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/shop", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 15*time.Second, cfg.PostingRetryInterval)
	assert.Equal(t, "nearest", cfg.DeliveryMatchStrategy)
}

func TestLoadConfigFallbacks(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_EXPIRY_DURATION", "soon")
	t.Setenv("POSTING_RETRY_INTERVAL", "-5s")
	t.Setenv("POSTING_RETRY_BATCH_SIZE", "0")
	t.Setenv("DELIVERY_MATCH_STRATEGY", "closest")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, time.Minute, cfg.PostingRetryInterval)
	assert.Equal(t, 20, cfg.PostingRetryBatchSize)
	assert.Equal(t, 10, cfg.PostingRetryMaxAttempts)
	assert.Equal(t, "first", cfg.DeliveryMatchStrategy)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Empty(t, cfg.KafkaBrokers)
}
