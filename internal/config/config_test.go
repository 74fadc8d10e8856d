package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerengine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 16, cfg.Queue.Capacity)
	assert.Equal(t, "", cfg.Metrics.Addr)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "transactions", cfg.Kafka.Topic)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("LEDGER_LOG_LEVEL", "debug")
	t.Setenv("LEDGER_QUEUE_CAPACITY", "256")
	t.Setenv("LEDGER_KAFKA_ENABLED", "true")
	t.Setenv("LEDGER_KAFKA_BROKERS", "b1:9092,b2:9092")

	cfg := config.Load()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 256, cfg.Queue.Capacity)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Kafka.Brokers)
}
