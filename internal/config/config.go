// Package config loads the ledger engine's environment-driven
// configuration, following the teacher's getEnv/getEnvAsInt pattern.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the full set of environment-controlled knobs. None of it
// changes the core engine's semantics; it only configures the ambient
// and domain-stack components around it (logging, metrics exposition,
// the alternate Kafka producer).
type Config struct {
	Logging LoggingConfig
	Queue   QueueConfig
	Metrics MetricsConfig
	Kafka   KafkaConfig
}

// LoggingConfig controls the diagnostic stream's verbosity and shape.
// Per spec §6, this is the single environment variable that governs
// diagnostic verbosity; default is warnings and above.
type LoggingConfig struct {
	Level  string
	Format string
}

// QueueConfig controls the bounded producer/consumer channel of spec §5.
type QueueConfig struct {
	Capacity int
}

// MetricsConfig controls the optional Prometheus/gin exposition server.
type MetricsConfig struct {
	Addr string // empty disables the server
}

// KafkaConfig controls the alternate Kafka transaction source.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load reads configuration from the environment, falling back to
// documented defaults.
func Load() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  getEnv("LEDGER_LOG_LEVEL", "warn"),
			Format: getEnv("LEDGER_LOG_FORMAT", "text"),
		},
		Queue: QueueConfig{
			Capacity: getEnvAsInt("LEDGER_QUEUE_CAPACITY", 16),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("LEDGER_METRICS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvAsBool("LEDGER_KAFKA_ENABLED", false),
			Brokers: getEnvAsSlice("LEDGER_KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("LEDGER_KAFKA_TOPIC", "transactions"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal
	}
	return strings.Split(valStr, ",")
}
