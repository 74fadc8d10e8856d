package ledger

import (
	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/money"
)

// Kind tags a Transaction's variant. Transactions are a fixed discriminated
// struct rather than an interface hierarchy so that Engine.Apply routes on
// a plain switch instead of dynamic dispatch (see spec's Design Notes).
type Kind int

const (
	Deposit Kind = iota
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is the tagged union of §3. Amount is only meaningful for
// Deposit and Withdrawal; it is the zero Amount otherwise.
type Transaction struct {
	Kind   Kind
	Client models.ClientID
	Tx     models.TxID
	Amount money.Amount
}

// NewDeposit builds a deposit transaction.
func NewDeposit(client models.ClientID, tx models.TxID, amount money.Amount) Transaction {
	return Transaction{Kind: Deposit, Client: client, Tx: tx, Amount: amount}
}

// NewWithdrawal builds a withdrawal transaction.
func NewWithdrawal(client models.ClientID, tx models.TxID, amount money.Amount) Transaction {
	return Transaction{Kind: Withdrawal, Client: client, Tx: tx, Amount: amount}
}

// NewDispute builds a dispute transaction.
func NewDispute(client models.ClientID, tx models.TxID) Transaction {
	return Transaction{Kind: Dispute, Client: client, Tx: tx}
}

// NewResolve builds a resolve transaction.
func NewResolve(client models.ClientID, tx models.TxID) Transaction {
	return Transaction{Kind: Resolve, Client: client, Tx: tx}
}

// NewChargeback builds a chargeback transaction.
func NewChargeback(client models.ClientID, tx models.TxID) Transaction {
	return Transaction{Kind: Chargeback, Client: client, Tx: tx}
}
