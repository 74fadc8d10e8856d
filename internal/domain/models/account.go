// Package models holds the ledger's plain data records, shared by the
// engine, the ingestion collaborators, and the metrics layer.
package models

import "ledgerengine/internal/money"

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal, unique across both kinds for
// the lifetime of one engine instance.
type TxID uint32

// ClientAccount is a client's available/held balances and freeze status.
// total is never stored; it is always available+held.
type ClientAccount struct {
	ID        ClientID
	Available money.Amount
	Held      money.Amount
	Frozen    bool
}

// Total returns available+held.
func (a *ClientAccount) Total() money.Amount {
	return a.Available.Add(a.Held)
}

// Snapshot is a read-only view of a client account, safe to hand to
// callers after the engine has released ownership of the underlying
// record.
type Snapshot struct {
	ID        ClientID
	Available money.Amount
	Held      money.Amount
	Total     money.Amount
	Locked    bool
}

// NewSnapshot copies acc into an immutable Snapshot.
func NewSnapshot(acc *ClientAccount) Snapshot {
	return Snapshot{
		ID:        acc.ID,
		Available: acc.Available,
		Held:      acc.Held,
		Total:     acc.Total(),
		Locked:    acc.Frozen,
	}
}
