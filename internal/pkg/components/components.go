// Package components wires together the ledger engine's dependencies:
// configuration, logging, metrics, and the engine itself. It mirrors the
// teacher's singleton Container, trimmed to the pieces a batch CLI needs
// (no HTTP API, no database, no event broker).
package components

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerengine/internal/config"
	"ledgerengine/internal/ledger"
	"ledgerengine/internal/metrics"
	"ledgerengine/internal/pkg/logging"
)

// Container holds every component one ledger run needs.
type Container struct {
	Config   *config.Config
	RunID    string
	Recorder *metrics.Recorder
	Engine   *ledger.Engine
	Metrics  *metrics.Server
}

var (
	instance     *Container
	instanceOnce sync.Once
	instanceErr  error
)

// GetInstance returns the singleton container, building it on first call.
func GetInstance() (*Container, error) {
	instanceOnce.Do(func() {
		instance, instanceErr = newContainer()
	})
	return instance, instanceErr
}

// New creates and initializes all application components.
func New() (*Container, error) {
	return GetInstance()
}

func newContainer() (*Container, error) {
	container := &Container{}

	if err := container.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := container.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := container.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := container.initEngine(); err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	logging.Info("all components initialized", map[string]interface{}{
		"run_id": container.RunID,
	})
	return container, nil
}

// initConfig loads the application configuration from the environment.
func (c *Container) initConfig() error {
	c.Config = config.Load()
	return nil
}

// initLogger sets up the diagnostic logger, stamped with a fresh run id so
// every line emitted by this invocation can be correlated.
func (c *Container) initLogger() error {
	c.RunID = uuid.NewString()
	logging.Init(c.Config, c.RunID)

	logging.Info("logger initialized", map[string]interface{}{
		"level":  c.Config.Logging.Level,
		"format": c.Config.Logging.Format,
	})
	return nil
}

// initMetrics builds the Prometheus recorder and, if LEDGER_METRICS_ADDR is
// set, the HTTP server that exposes it.
func (c *Container) initMetrics() error {
	c.Recorder = metrics.NewRecorder()

	if c.Config.Metrics.Addr == "" {
		logging.Info("metrics server disabled", nil)
		return nil
	}

	c.Metrics = metrics.NewServer(c.Config.Metrics.Addr, c.Recorder)
	return nil
}

// initEngine constructs the ledger engine, fanning every Apply outcome out
// to the metrics recorder and a diagnostic log line for rejections, and
// pre-sized using the configured queue capacity as a hint.
func (c *Container) initEngine() error {
	rejectionLog := ledger.ObserverFunc(func(tx ledger.Transaction, err error, _ time.Duration) {
		if err == nil {
			return
		}
		fields := logging.TxFields(tx.Client, tx.Tx)
		fields["reason"] = err.Error()
		logging.Warn("transaction rejected", fields)
	})

	c.Engine = ledger.New(
		ledger.WithObserver(ledger.MultiObserver(c.Recorder, rejectionLog)),
		ledger.WithCapacityHint(c.Config.Queue.Capacity),
	)
	return nil
}

// Start begins serving the metrics endpoint, if one was configured. It
// returns immediately; the server stops when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	if c.Metrics != nil {
		c.Metrics.Start(ctx)
	}
}
