// Package pipeline wires a transaction source to the ledger engine over a
// bounded channel, the concurrency model of spec §5: one producer
// goroutine, one consumer goroutine, no internal locking in the engine
// itself.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ledgerengine/internal/ledger"
)

// RowErrorObserver is notified of ingestion-side row errors as they
// arrive, independent of the engine's own per-transaction Observer.
type RowErrorObserver func(err error)

// Run drains transactions from in (produced by a csv.Read/kafkasrc.Read
// call elsewhere) into engine, and forwards ingestion errors from errs to
// onRowError as they arrive. It returns once both the transaction and
// error channels are closed, or ctx is cancelled.
//
// Run does not own in's producer goroutine; callers start that
// separately (csv.Read and kafkasrc.Read already do). This function is
// the consumer half plus the error-forwarding half, coordinated with an
// errgroup so a consumer-side failure can cancel row-error forwarding and
// vice versa.
func Run[E error](ctx context.Context, engine *ledger.Engine, in <-chan ledger.Transaction, errs <-chan E, onRowError RowErrorObserver) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return engine.Run(ctx, in)
	})

	g.Go(func() error {
		for {
			select {
			case e, ok := <-errs:
				if !ok {
					return nil
				}
				if onRowError != nil {
					onRowError(e)
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}
