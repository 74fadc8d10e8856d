package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	csvsrc "ledgerengine/internal/ingest/csv"
	"ledgerengine/internal/ingest/kafkasrc"
	"ledgerengine/internal/pipeline"
	"ledgerengine/internal/pkg/components"
	"ledgerengine/internal/pkg/logging"
)

func main() {
	container, err := components.New()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container.Start(ctx)

	if err := run(ctx, container); err != nil {
		logging.Error("run failed", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, container *components.Container) error {
	if container.Config.Kafka.Enabled {
		return runKafka(ctx, container)
	}
	return runCSV(ctx, container)
}

// runCSV reads the positional input path as a CSV transaction stream,
// drains it into the engine, and writes the final account snapshot to
// stdout. Per spec §6, the only failure that aborts the run is the input
// file itself failing to open; a mismatched file extension is a warning.
func runCSV(ctx context.Context, container *components.Container) error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <input.csv>", os.Args[0])
	}
	path := os.Args[1]

	if !strings.HasSuffix(path, ".csv") {
		logging.Warn("input file does not have a .csv suffix", map[string]interface{}{
			"path": path,
		})
	}

	txs, rowErrs, err := csvsrc.Read(ctx, path, container.Config.Queue.Capacity)
	if err != nil {
		return err
	}

	onRowError := func(e error) {
		logging.Warn("row rejected", map[string]interface{}{"error": e.Error()})
	}

	if err := pipeline.Run(ctx, container.Engine, txs, rowErrs, onRowError); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return writeSnapshot(container)
}

// runKafka is the alternate source: it consumes the configured topic
// instead of reading a file, per spec_full.md §7.1's documented deviation
// for LEDGER_KAFKA_ENABLED.
func runKafka(ctx context.Context, container *components.Container) error {
	cfg := container.Config

	txs, rowErrs, closeConsumer, err := kafkasrc.Read(ctx, kafkasrc.Config{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		Capacity: cfg.Queue.Capacity,
	})
	if err != nil {
		return err
	}
	defer closeConsumer()

	onRowError := func(e error) {
		logging.Warn("row rejected", map[string]interface{}{"error": e.Error()})
	}

	if err := pipeline.Run(ctx, container.Engine, txs, rowErrs, onRowError); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return writeSnapshot(container)
}

func writeSnapshot(container *components.Container) error {
	clients := container.Engine.Clients()
	container.Recorder.SetKnownClients(len(clients))
	return csvsrc.Write(os.Stdout, clients)
}
