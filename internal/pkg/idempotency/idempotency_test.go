package idempotency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerengine/internal/ledger"
	"ledgerengine/internal/money"
	"ledgerengine/internal/pkg/idempotency"
)

func TestTransactionKeyIsDeterministic(t *testing.T) {
	tx := ledger.NewDeposit(1, 1, money.FromScaled(1000))
	assert.Equal(t, idempotency.TransactionKey(tx), idempotency.TransactionKey(tx))
}

func TestTransactionKeyDiffersByTx(t *testing.T) {
	a := ledger.NewDeposit(1, 1, money.FromScaled(1000))
	b := ledger.NewDeposit(1, 2, money.FromScaled(1000))
	assert.NotEqual(t, idempotency.TransactionKey(a), idempotency.TransactionKey(b))
}

func TestDisputeKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, idempotency.DisputeKey("dispute", 1, 1), idempotency.DisputeKey("dispute", 1, 1))
	assert.NotEqual(t, idempotency.DisputeKey("dispute", 1, 1), idempotency.DisputeKey("resolve", 1, 1))
}
