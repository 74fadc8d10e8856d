// Package idempotency derives a stable correlation key for one
// transaction, a value that identifies a single tx across the producer,
// the engine, and the diagnostic stream. No other package in this module
// calls it: the logger and the metrics recorder do not attach these keys.
//
// Unlike the teacher's original use (deduplicating retried HTTP writes),
// the ledger never retries a transaction — the key here is purely a
// content-derived trace id, not a dedupe mechanism.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/ledger"
)

// TransactionKey derives a deterministic correlation key from a
// transaction's kind, client, and tx id.
//
// Example:
//   - deposit client=1 tx=1 -> "a4676203b1e6c23498a24ac4bb9699e0..."
func TransactionKey(tx ledger.Transaction) string {
	data := fmt.Sprintf("%s:%d:%d", tx.Kind, tx.Client, tx.Tx)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// DisputeKey derives a correlation key for a dispute-lifecycle operation,
// which (unlike deposit/withdrawal) carries no amount of its own.
func DisputeKey(op string, client models.ClientID, tx models.TxID) string {
	data := fmt.Sprintf("%s:%d:%d", op, client, tx)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
