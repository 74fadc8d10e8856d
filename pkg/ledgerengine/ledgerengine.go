// Package ledgerengine is the public embedding surface over the engine's
// internal packages. The engine exposes no wire protocol (spec mandates no
// persistence and no external API), so any out-of-module program that
// wants to drive it directly — such as the load-test harness, which lives
// in its own module the way the teacher's perf-test does — needs a
// non-internal entry point. This package is that entry point: thin type
// aliases and re-exported constructors, no behavior of its own.
package ledgerengine

import (
	"context"

	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/ledger"
	"ledgerengine/internal/money"
)

type (
	Engine      = ledger.Engine
	Option      = ledger.Option
	Observer    = ledger.Observer
	Transaction = ledger.Transaction
	Kind        = ledger.Kind
	Error       = ledger.Error
	Code        = ledger.Code
	Snapshot    = models.Snapshot
	ClientID    = models.ClientID
	TxID        = models.TxID
	Amount      = money.Amount
)

// The five transaction kinds, re-exported so out-of-module callers (the
// load-test metrics collector) can switch on them without importing
// anything under internal/.
const (
	Deposit    = ledger.Deposit
	Withdrawal = ledger.Withdrawal
	Dispute    = ledger.Dispute
	Resolve    = ledger.Resolve
	Chargeback = ledger.Chargeback
)

// The error codes an Apply call can return, re-exported for the same
// reason as the Kind constants above.
const (
	CodeAccountFrozen     = ledger.CodeAccountFrozen
	CodeDuplicateTxID     = ledger.CodeDuplicateTxID
	CodeInsufficientFunds = ledger.CodeInsufficientFunds
	CodeTxNotFound        = ledger.CodeTxNotFound
	CodeClientMismatch    = ledger.CodeClientMismatch
	CodeInvalidState      = ledger.CodeInvalidState
	CodeClientNotFound    = ledger.CodeClientNotFound
)

var (
	New              = ledger.New
	WithObserver     = ledger.WithObserver
	WithCapacityHint = ledger.WithCapacityHint

	NewDeposit    = ledger.NewDeposit
	NewWithdrawal = ledger.NewWithdrawal
	NewDispute    = ledger.NewDispute
	NewResolve    = ledger.NewResolve
	NewChargeback = ledger.NewChargeback

	AmountFromFloat  = money.FromFloat
	AmountFromString = money.FromString
)

// Drain feeds in into e until the channel closes or ctx is cancelled, the
// same consumer loop internal/pipeline uses against a real source.
func Drain(ctx context.Context, e *Engine, in <-chan Transaction) error {
	return e.Run(ctx, in)
}
