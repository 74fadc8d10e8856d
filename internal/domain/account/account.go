// Package domain holds the mutation primitives over a ClientAccount.
//
// Unlike the HTTP banking handlers this package was adapted from, the
// ledger engine that calls these functions is strictly single-threaded
// (see the engine package doc) so no per-account lock is taken here.
package domain

import (
	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/money"
)

// Credit increases available balance. Used for deposits.
func Credit(acc *models.ClientAccount, amount money.Amount) {
	acc.Available.Increment(amount)
}

// Debit decreases available balance. Used for withdrawals. Callers must
// check sufficiency before calling; Debit does not validate.
func Debit(acc *models.ClientAccount, amount money.Amount) {
	acc.Available.Decrement(amount)
}

// Hold moves amount from available to held. Used for disputes. Available
// may go negative if the funds were already withdrawn; this is
// intentional (see spec §4.3.2).
func Hold(acc *models.ClientAccount, amount money.Amount) {
	acc.Available.Decrement(amount)
	acc.Held.Increment(amount)
}

// Release moves amount from held back to available. Used for resolves.
func Release(acc *models.ClientAccount, amount money.Amount) {
	acc.Held.Decrement(amount)
	acc.Available.Increment(amount)
}

// RemoveHeld decreases held balance without touching available. Used for
// chargebacks; apart from Debit, it is the only primitive that decreases
// total.
func RemoveHeld(acc *models.ClientAccount, amount money.Amount) {
	acc.Held.Decrement(amount)
}

// Freeze locks the account against further deposits and withdrawals.
func Freeze(acc *models.ClientAccount) {
	acc.Frozen = true
}

// Unfreeze clears the freeze flag.
func Unfreeze(acc *models.ClientAccount) {
	acc.Frozen = false
}
