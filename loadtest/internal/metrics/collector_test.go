package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	engine "ledgerengine/pkg/ledgerengine"

	"github.com/core-banking/loadtest/internal/metrics"
)

func TestObserveAccumulatesStatsByKind(t *testing.T) {
	c := metrics.NewCollector()

	c.Observe(engine.NewDeposit(1, 1, engine.AmountFromFloat(10)), nil, 2*time.Millisecond)
	c.Observe(engine.NewWithdrawal(1, 2, engine.AmountFromFloat(50)),
		&engine.Error{Code: engine.CodeInsufficientFunds, Op: "withdrawal"}, 4*time.Millisecond)
	c.Observe(engine.NewWithdrawal(1, 3, engine.AmountFromFloat(1)), nil, 1*time.Millisecond)

	stats := c.GetStats()
	assert.Equal(t, int64(3), stats.TotalRequests)
	assert.Equal(t, int64(2), stats.TotalSuccess)
	assert.Equal(t, int64(1), stats.TotalFailures)
	assert.InDelta(t, 2.0/3.0, stats.SuccessRate, 0.001)

	depositStats := stats.KindStats[engine.Deposit.String()]
	assert.Equal(t, int64(1), depositStats.Count)
	assert.Equal(t, int64(1), stats.ErrorsByCode[engine.CodeInsufficientFunds])
}

func TestObserveTracksDisputeAndChargebackRatesAgainstSettledDeposits(t *testing.T) {
	c := metrics.NewCollector()

	c.Observe(engine.NewDeposit(1, 1, engine.AmountFromFloat(10)), nil, time.Millisecond)
	c.Observe(engine.NewDeposit(1, 2, engine.AmountFromFloat(10)), nil, time.Millisecond)
	c.Observe(engine.NewDispute(1, 1), nil, time.Millisecond)
	c.Observe(engine.NewChargeback(1, 1), nil, time.Millisecond)

	stats := c.GetStats()
	assert.InDelta(t, 0.5, stats.DisputeRate, 0.001)
	assert.InDelta(t, 0.5, stats.ChargebackRate, 0.001)
}

func TestGetStatsOnEmptyCollector(t *testing.T) {
	c := metrics.NewCollector()
	stats := c.GetStats()
	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Equal(t, time.Duration(0), stats.P99Latency)
	assert.Equal(t, float64(0), stats.DisputeRate)
}
