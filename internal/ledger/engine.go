// Package ledger implements the transaction engine: a deterministic state
// machine over per-client account balances and per-deposit dispute state.
//
// The engine is strictly single-threaded. It is designed to be driven by
// one cooperative consumer goroutine reading off a bounded channel (see
// internal/pipeline); Apply itself never blocks and never spawns work, so
// there is nothing to synchronize internally and no per-account locking is
// introduced.
package ledger

import (
	"context"
	"time"

	"ledgerengine/internal/domain/deposit"
	"ledgerengine/internal/domain/models"
)

// Observer receives the outcome and latency of every Apply call,
// independent of whether it succeeded. Engines use it to feed metrics and
// logging without coupling the state machine to either concern.
type Observer interface {
	Observe(tx Transaction, err error, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(Transaction, error, time.Duration) {}

// ObserverFunc adapts a plain function to Observer, the way
// http.HandlerFunc adapts a function to http.Handler.
type ObserverFunc func(tx Transaction, err error, d time.Duration)

func (f ObserverFunc) Observe(tx Transaction, err error, d time.Duration) {
	f(tx, err, d)
}

// MultiObserver fans one Apply outcome out to every obs in order, so a
// caller can attach metrics recording and diagnostic logging to the same
// engine without either depending on the other.
func MultiObserver(obs ...Observer) Observer {
	return ObserverFunc(func(tx Transaction, err error, d time.Duration) {
		for _, o := range obs {
			if o != nil {
				o.Observe(tx, err, d)
			}
		}
	})
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithCapacityHint pre-sizes the deposit and withdrawal-id tables for an
// expected number of non-dispute rows, per the hash-map sizing note in
// the Design Notes.
func WithCapacityHint(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.deposits = make(map[models.TxID]*deposit.Record, n)
			e.withdrawalIDs = make(map[models.TxID]struct{}, n)
		}
	}
}

// WithObserver attaches an Observer invoked after every Apply.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// Engine owns the account table, the deposit-record table, and the
// withdrawal id set for one ledger run.
type Engine struct {
	accounts      map[models.ClientID]*models.ClientAccount
	deposits      map[models.TxID]*deposit.Record
	withdrawalIDs map[models.TxID]struct{}
	observer      Observer
}

// New returns an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		accounts:      make(map[models.ClientID]*models.ClientAccount),
		deposits:      make(map[models.TxID]*deposit.Record),
		withdrawalIDs: make(map[models.TxID]struct{}),
		observer:      noopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply applies tx to the engine state, or returns a structured Error and
// leaves balances, dispute states and tx id sets unchanged with respect to
// tx. Apply validates every precondition before committing any of those
// mutations (see spec §4.3.4). A deposit or withdrawal still creates the
// (zero-balance) account of a previously unknown client before its checks
// run, so a rejected withdrawal can leave that empty account behind.
func (e *Engine) Apply(tx Transaction) error {
	start := time.Now()
	var err error
	switch tx.Kind {
	case Deposit:
		err = e.applyDeposit(tx.Client, tx.Tx, tx.Amount)
	case Withdrawal:
		err = e.applyWithdrawal(tx.Client, tx.Tx, tx.Amount)
	case Dispute:
		err = e.applyDispute(tx.Client, tx.Tx)
	case Resolve:
		err = e.applyResolve(tx.Client, tx.Tx)
	case Chargeback:
		err = e.applyChargeback(tx.Client, tx.Tx)
	}
	e.observer.Observe(tx, err, time.Since(start))
	return err
}

// Run drains in, applying each transaction until the channel is closed or
// ctx is cancelled. Per-transaction errors are swallowed here (the
// Observer attached at construction is the only place to see them);
// callers who need per-call errors should call Apply directly.
func (e *Engine) Run(ctx context.Context, in <-chan Transaction) error {
	for {
		select {
		case tx, ok := <-in:
			if !ok {
				return nil
			}
			_ = e.Apply(tx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Clients returns a read-only snapshot of every known client account, in
// no particular order.
func (e *Engine) Clients() []models.Snapshot {
	out := make([]models.Snapshot, 0, len(e.accounts))
	for _, acc := range e.accounts {
		out = append(out, models.NewSnapshot(acc))
	}
	return out
}

// GetClient returns a read-only snapshot of one client account, if known.
func (e *Engine) GetClient(id models.ClientID) (models.Snapshot, bool) {
	acc, ok := e.accounts[id]
	if !ok {
		return models.Snapshot{}, false
	}
	return models.NewSnapshot(acc), true
}

func (e *Engine) knownTxID(tx models.TxID) bool {
	if _, ok := e.deposits[tx]; ok {
		return true
	}
	_, ok := e.withdrawalIDs[tx]
	return ok
}

func (e *Engine) accountFor(client models.ClientID) *models.ClientAccount {
	acc, ok := e.accounts[client]
	if !ok {
		acc = &models.ClientAccount{ID: client}
		e.accounts[client] = acc
	}
	return acc
}
