package ledger

import (
	account "ledgerengine/internal/domain/account"
	"ledgerengine/internal/domain/deposit"
	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/money"
)

// applyDeposit implements spec §4.3.2 Deposit.
func (e *Engine) applyDeposit(client models.ClientID, tx models.TxID, amount money.Amount) error {
	if e.knownTxID(tx) {
		return errDuplicateTxID("deposit", tx)
	}

	acc := e.accountFor(client)
	if acc.Frozen {
		return errAccountFrozen("deposit", client)
	}

	account.Credit(acc, amount)
	e.deposits[tx] = &deposit.Record{Client: client, Amount: amount, State: deposit.Ok}
	return nil
}

// applyWithdrawal implements spec §4.3.2 Withdrawal.
func (e *Engine) applyWithdrawal(client models.ClientID, tx models.TxID, amount money.Amount) error {
	if e.knownTxID(tx) {
		return errDuplicateTxID("withdrawal", tx)
	}

	acc := e.accountFor(client)
	if acc.Frozen {
		return errAccountFrozen("withdrawal", client)
	}
	if acc.Available.LessThan(amount) {
		return errInsufficientFunds("withdrawal", client, acc.Available, amount)
	}

	account.Debit(acc, amount)
	e.withdrawalIDs[tx] = struct{}{}
	return nil
}

// applyDispute implements spec §4.3.2 Dispute. The negative-available
// policy in step 5 is enforced by account.Hold itself: it always succeeds,
// letting available go negative when funds were already withdrawn.
func (e *Engine) applyDispute(client models.ClientID, tx models.TxID) error {
	rec, ok := e.deposits[tx]
	if !ok {
		return errTxNotFound("dispute", tx)
	}
	if rec.Client != client {
		return errClientMismatch("dispute", tx, rec.Client, client)
	}
	if rec.State == deposit.Disputed {
		return errInvalidState("dispute", tx)
	}

	acc, ok := e.accounts[client]
	if !ok {
		return errClientNotFound("dispute", client)
	}

	rec.State = deposit.Disputed
	account.Hold(acc, rec.Amount)
	return nil
}

// applyResolve implements spec §4.3.2 Resolve.
func (e *Engine) applyResolve(client models.ClientID, tx models.TxID) error {
	rec, ok := e.deposits[tx]
	if !ok {
		return errTxNotFound("resolve", tx)
	}
	if rec.Client != client {
		return errClientMismatch("resolve", tx, rec.Client, client)
	}
	if rec.State != deposit.Disputed {
		return errInvalidState("resolve", tx)
	}

	acc, ok := e.accounts[client]
	if !ok {
		return errClientNotFound("resolve", client)
	}

	rec.State = deposit.Ok
	account.Release(acc, rec.Amount)
	return nil
}

// applyChargeback implements spec §4.3.2 Chargeback. The deposit record
// is evicted on success: spec §9 encodes the terminal ChargedBack state
// as absence from the deposits map.
func (e *Engine) applyChargeback(client models.ClientID, tx models.TxID) error {
	rec, ok := e.deposits[tx]
	if !ok {
		return errTxNotFound("chargeback", tx)
	}
	if rec.Client != client {
		return errClientMismatch("chargeback", tx, rec.Client, client)
	}
	if rec.State != deposit.Disputed {
		return errInvalidState("chargeback", tx)
	}

	acc, ok := e.accounts[client]
	if !ok {
		return errClientNotFound("chargeback", client)
	}

	account.RemoveHeld(acc, rec.Amount)
	account.Freeze(acc)
	delete(e.deposits, tx)
	return nil
}
