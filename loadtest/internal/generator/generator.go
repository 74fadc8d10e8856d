// Package generator synthesizes a transaction stream for the load-test
// harness, replacing the teacher's OperationMix{Deposit,Withdraw,Transfer,
// Balance} with the ledger's own transaction kinds.
package generator

import (
	"math/rand"
	"time"

	engine "ledgerengine/pkg/ledgerengine"
)

type OperationType string

const (
	OpDeposit    OperationType = "deposit"
	OpWithdrawal OperationType = "withdrawal"
	OpDispute    OperationType = "dispute"
	OpResolve    OperationType = "resolve"
	OpChargeback OperationType = "chargeback"
)

// Scenario describes one load-test run's shape.
type Scenario struct {
	Name             string
	Description      string
	Clients          int
	TargetOperations int64
	Distribution     map[OperationType]float64
	MinAmount        float64
	MaxAmount        float64
	ThinkTime        time.Duration
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:             "Default Ledger Load Test",
		Description:      "Balanced mix of deposits, withdrawals, and dispute lifecycle events",
		Clients:          500,
		TargetOperations: 100_000,
		Distribution: map[OperationType]float64{
			OpDeposit:    0.45,
			OpWithdrawal: 0.35,
			OpDispute:    0.12,
			OpResolve:    0.06,
			OpChargeback: 0.02,
		},
		MinAmount: 1.00,
		MaxAmount: 500.00,
		ThinkTime: 0,
	}
}

func HighDisputeScenario() *Scenario {
	return &Scenario{
		Name:             "Dispute Heavy Load Test",
		Description:      "Exercises the dispute/resolve/chargeback lifecycle under load",
		Clients:          200,
		TargetOperations: 50_000,
		Distribution: map[OperationType]float64{
			OpDeposit:    0.30,
			OpWithdrawal: 0.15,
			OpDispute:    0.30,
			OpResolve:    0.15,
			OpChargeback: 0.10,
		},
		MinAmount: 10.00,
		MaxAmount: 1000.00,
		ThinkTime: 0,
	}
}

func ReadHeavyScenario() *Scenario {
	return &Scenario{
		Name:             "Deposit Heavy Load Test",
		Description:      "Mostly small deposits, light withdrawal and dispute traffic",
		Clients:          2000,
		TargetOperations: 200_000,
		Distribution: map[OperationType]float64{
			OpDeposit:    0.80,
			OpWithdrawal: 0.15,
			OpDispute:    0.03,
			OpResolve:    0.015,
			OpChargeback: 0.005,
		},
		MinAmount: 1.00,
		MaxAmount: 50.00,
		ThinkTime: 0,
	}
}

// Validate checks that the distribution is a well-formed probability mix.
func (s *Scenario) Validate() error {
	total := 0.0
	for _, weight := range s.Distribution {
		total += weight
	}
	if total < 0.99 || total > 1.01 {
		return errDistribution
	}
	if s.Clients <= 0 {
		return errClients
	}
	return nil
}

// Generator produces one ordered transaction at a time. The ledger engine
// is single-consumer and transaction ids must never collide, so unlike the
// teacher's concurrent HTTP workers, this is a single sequential stream
// rather than a worker pool racing to assign ids.
type Generator struct {
	scenario   *Scenario
	rng        *rand.Rand
	nextTx     uint32
	open       map[engine.ClientID][]engine.TxID // undisputed deposits
	disputed   map[engine.ClientID][]engine.TxID
	frozen     map[engine.ClientID]bool
	cumulative []weightedKind
}

type weightedKind struct {
	kind OperationType
	upTo float64
}

// New builds a Generator for scenario, seeded deterministically so runs
// are reproducible given the same seed.
func New(scenario *Scenario, seed int64) *Generator {
	g := &Generator{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(seed)),
		open:     make(map[engine.ClientID][]engine.TxID),
		disputed: make(map[engine.ClientID][]engine.TxID),
		frozen:   make(map[engine.ClientID]bool),
	}

	cumulative := 0.0
	for _, kind := range []OperationType{OpDeposit, OpWithdrawal, OpDispute, OpResolve, OpChargeback} {
		if w, ok := scenario.Distribution[kind]; ok {
			cumulative += w
			g.cumulative = append(g.cumulative, weightedKind{kind: kind, upTo: cumulative})
		}
	}

	return g
}

// Next returns the next synthesized transaction.
func (g *Generator) Next() engine.Transaction {
	client := engine.ClientID(g.rng.Intn(g.scenario.Clients) + 1)

	switch g.pick() {
	case OpDeposit:
		return g.deposit(client)
	case OpWithdrawal:
		return g.withdrawal(client)
	case OpDispute:
		if tx, ok := g.takeOpen(client); ok {
			g.disputed[client] = append(g.disputed[client], tx)
			return engine.NewDispute(client, tx)
		}
		return g.deposit(client)
	case OpResolve:
		if tx, ok := g.takeDisputed(client); ok {
			g.open[client] = append(g.open[client], tx)
			return engine.NewResolve(client, tx)
		}
		return g.deposit(client)
	case OpChargeback:
		if tx, ok := g.takeDisputed(client); ok {
			g.frozen[client] = true
			return engine.NewChargeback(client, tx)
		}
		return g.deposit(client)
	default:
		return g.deposit(client)
	}
}

func (g *Generator) pick() OperationType {
	r := g.rng.Float64()
	for _, wk := range g.cumulative {
		if r <= wk.upTo {
			return wk.kind
		}
	}
	return OpDeposit
}

func (g *Generator) deposit(client engine.ClientID) engine.Transaction {
	tx := g.allocTxID()
	g.open[client] = append(g.open[client], tx)
	return engine.NewDeposit(client, tx, g.amount())
}

func (g *Generator) withdrawal(client engine.ClientID) engine.Transaction {
	return engine.NewWithdrawal(client, g.allocTxID(), g.amount())
}

func (g *Generator) amount() engine.Amount {
	span := g.scenario.MaxAmount - g.scenario.MinAmount
	if span < 0 {
		span = 0
	}
	value := g.scenario.MinAmount + g.rng.Float64()*span
	return engine.AmountFromFloat(value)
}

func (g *Generator) allocTxID() engine.TxID {
	g.nextTx++
	return engine.TxID(g.nextTx)
}

func (g *Generator) takeOpen(client engine.ClientID) (engine.TxID, bool) {
	return pop(g.open, client, g.rng)
}

func (g *Generator) takeDisputed(client engine.ClientID) (engine.TxID, bool) {
	return pop(g.disputed, client, g.rng)
}

func pop(m map[engine.ClientID][]engine.TxID, client engine.ClientID, rng *rand.Rand) (engine.TxID, bool) {
	ids := m[client]
	if len(ids) == 0 {
		return 0, false
	}
	i := rng.Intn(len(ids))
	tx := ids[i]
	ids[i] = ids[len(ids)-1]
	m[client] = ids[:len(ids)-1]
	return tx, true
}
