package ledger

import (
	"fmt"

	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/money"
)

// Code classifies an Error the way the teacher's APIError.Code
// classifies an HTTP failure, minus any HTTP coupling: there is no
// status code to carry because ledger errors never cross a wire.
type Code string

const (
	CodeAccountFrozen     Code = "ACCOUNT_FROZEN"
	CodeDuplicateTxID     Code = "DUPLICATE_TX_ID"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeTxNotFound        Code = "TX_NOT_FOUND"
	CodeClientMismatch    Code = "CLIENT_MISMATCH"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeClientNotFound    Code = "CLIENT_NOT_FOUND"
)

// Error is the structured per-transaction failure returned by
// Engine.Apply. It is a discriminated struct, not a hierarchy of error
// types, so callers can dispatch on Code without a type switch.
type Error struct {
	Code      Code
	Op        string // "deposit", "withdrawal", "dispute", "resolve", "chargeback"
	Client    models.ClientID
	Tx        models.TxID
	Available money.Amount
	Requested money.Amount
	Expected  models.ClientID
	Actual    models.ClientID
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeAccountFrozen:
		return fmt.Sprintf("%s: client %d: account frozen", e.Op, e.Client)
	case CodeDuplicateTxID:
		return fmt.Sprintf("%s: tx %d: duplicate transaction id", e.Op, e.Tx)
	case CodeInsufficientFunds:
		return fmt.Sprintf("%s: client %d: insufficient funds: available %s, requested %s",
			e.Op, e.Client, e.Available, e.Requested)
	case CodeTxNotFound:
		return fmt.Sprintf("%s: tx %d: not found", e.Op, e.Tx)
	case CodeClientMismatch:
		return fmt.Sprintf("%s: tx %d: client mismatch: expected %d, got %d", e.Op, e.Tx, e.Expected, e.Actual)
	case CodeInvalidState:
		return fmt.Sprintf("%s: tx %d: invalid dispute state", e.Op, e.Tx)
	case CodeClientNotFound:
		return fmt.Sprintf("%s: client %d: not found", e.Op, e.Client)
	default:
		return fmt.Sprintf("%s: unknown ledger error", e.Op)
	}
}

func errAccountFrozen(op string, client models.ClientID) *Error {
	return &Error{Code: CodeAccountFrozen, Op: op, Client: client}
}

func errDuplicateTxID(op string, tx models.TxID) *Error {
	return &Error{Code: CodeDuplicateTxID, Op: op, Tx: tx}
}

func errInsufficientFunds(op string, client models.ClientID, available, requested money.Amount) *Error {
	return &Error{Code: CodeInsufficientFunds, Op: op, Client: client, Available: available, Requested: requested}
}

func errTxNotFound(op string, tx models.TxID) *Error {
	return &Error{Code: CodeTxNotFound, Op: op, Tx: tx}
}

func errClientMismatch(op string, tx models.TxID, expected, actual models.ClientID) *Error {
	return &Error{Code: CodeClientMismatch, Op: op, Tx: tx, Expected: expected, Actual: actual}
}

func errInvalidState(op string, tx models.TxID) *Error {
	return &Error{Code: CodeInvalidState, Op: op, Tx: tx}
}

func errClientNotFound(op string, client models.ClientID) *Error {
	return &Error{Code: CodeClientNotFound, Op: op, Client: client}
}
