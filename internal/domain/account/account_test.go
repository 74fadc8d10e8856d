package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerengine/internal/domain/account"
	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/money"
)

func newTestAccount(available, held int64) *models.ClientAccount {
	return &models.ClientAccount{
		ID:        1,
		Available: money.FromScaled(available),
		Held:      money.FromScaled(held),
	}
}

func TestCredit(t *testing.T) {
	acc := newTestAccount(1000, 0)
	domain.Credit(acc, money.FromScaled(500))
	assert.Equal(t, money.FromScaled(1500), acc.Available)
	assert.Equal(t, money.FromScaled(0), acc.Held)
}

func TestDebit(t *testing.T) {
	acc := newTestAccount(1000, 0)
	domain.Debit(acc, money.FromScaled(300))
	assert.Equal(t, money.FromScaled(700), acc.Available)
}

func TestHoldMovesAvailableToHeld(t *testing.T) {
	acc := newTestAccount(1000, 0)
	domain.Hold(acc, money.FromScaled(400))
	assert.Equal(t, money.FromScaled(600), acc.Available)
	assert.Equal(t, money.FromScaled(400), acc.Held)
	assert.Equal(t, money.FromScaled(1000), acc.Total())
}

func TestHoldCanMakeAvailableNegative(t *testing.T) {
	acc := newTestAccount(40, 0)
	domain.Hold(acc, money.FromScaled(100))
	assert.Equal(t, money.FromScaled(-60), acc.Available)
	assert.Equal(t, money.FromScaled(100), acc.Held)
	assert.Equal(t, money.FromScaled(40), acc.Total())
}

func TestReleaseReversesHold(t *testing.T) {
	acc := newTestAccount(600, 400)
	domain.Release(acc, money.FromScaled(400))
	assert.Equal(t, money.FromScaled(1000), acc.Available)
	assert.Equal(t, money.FromScaled(0), acc.Held)
}

func TestHoldReleaseRoundTripIsIdentity(t *testing.T) {
	acc := newTestAccount(1000, 0)
	before := *acc
	domain.Hold(acc, money.FromScaled(250))
	domain.Release(acc, money.FromScaled(250))
	assert.Equal(t, before, *acc)
}

func TestRemoveHeldDecreasesTotalOnly(t *testing.T) {
	acc := newTestAccount(600, 400)
	domain.RemoveHeld(acc, money.FromScaled(400))
	assert.Equal(t, money.FromScaled(600), acc.Available)
	assert.Equal(t, money.FromScaled(0), acc.Held)
	assert.Equal(t, money.FromScaled(600), acc.Total())
}

func TestFreezeUnfreeze(t *testing.T) {
	acc := newTestAccount(0, 0)
	assert.False(t, acc.Frozen)
	domain.Freeze(acc)
	assert.True(t, acc.Frozen)
	domain.Unfreeze(acc)
	assert.False(t, acc.Frozen)
}
