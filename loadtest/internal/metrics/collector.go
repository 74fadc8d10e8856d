// Package metrics accumulates per-run statistics for a load-test run by
// implementing the engine's own Observer interface directly, rather than
// carrying a parallel HTTP-era shape keyed by arbitrary operation-name
// strings. Percentile bookkeeping is adapted from the teacher's
// perf-test collector; the fields tracked are specific to this ledger's
// five transaction kinds and dispute-lifecycle error codes, not to a
// generic request/response model.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	engine "ledgerengine/pkg/ledgerengine"
)

// Collector implements engine.Observer: cmd/loadtest attaches it to the
// engine with WithObserver, so every Engine.Apply call reaches it without
// a separate RecordOperation(opType string, ...) seam.
type Collector struct {
	mu          sync.RWMutex
	byKind      map[engine.Kind]*kindMetrics
	startTime   time.Time
	total       int64
	successes   int64
	failures    int64
	latencies   []time.Duration
	byCode      map[engine.Code]int64
	chargebacks int64
	disputes    int64
}

type kindMetrics struct {
	Count     int64
	Success   int64
	Failures  int64
	Latencies []time.Duration
}

// Stats is a point-in-time snapshot of the accumulated run.
type Stats struct {
	TotalRequests     int64
	TotalSuccess      int64
	TotalFailures     int64
	SuccessRate       float64
	RequestsPerSecond float64
	MeanLatency       time.Duration
	MedianLatency     time.Duration
	P50Latency        time.Duration
	P90Latency        time.Duration
	P95Latency        time.Duration
	P99Latency        time.Duration
	MinLatency        time.Duration
	MaxLatency        time.Duration
	KindStats         map[string]*KindStats
	ErrorsByCode      map[engine.Code]int64
	// DisputeRate and ChargebackRate are domain-specific KPIs this
	// ledger cares about that a generic request collector would have no
	// field for: the fraction of settled deposits that end up disputed
	// or, further, charged back.
	DisputeRate    float64
	ChargebackRate float64
	Duration       time.Duration
}

// KindStats is the per-transaction-kind breakdown of Stats.
type KindStats struct {
	Count       int64
	SuccessRate float64
	MeanLatency time.Duration
	P99Latency  time.Duration
}

func NewCollector() *Collector {
	return &Collector{
		byKind:    make(map[engine.Kind]*kindMetrics),
		byCode:    make(map[engine.Code]int64),
		startTime: time.Now(),
	}
}

// Observe records the outcome of one Engine.Apply call. It satisfies
// engine.Observer, so an Executor can hand a Collector straight to
// WithObserver instead of calling a bespoke recording method after every
// Apply.
func (c *Collector) Observe(tx engine.Transaction, err error, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	km, ok := c.byKind[tx.Kind]
	if !ok {
		km = &kindMetrics{Latencies: make([]time.Duration, 0, 1024)}
		c.byKind[tx.Kind] = km
	}

	atomic.AddInt64(&km.Count, 1)
	atomic.AddInt64(&c.total, 1)

	if err == nil {
		atomic.AddInt64(&km.Success, 1)
		atomic.AddInt64(&c.successes, 1)
		if tx.Kind == engine.Dispute {
			c.disputes++
		}
		if tx.Kind == engine.Chargeback {
			c.chargebacks++
		}
	} else {
		atomic.AddInt64(&km.Failures, 1)
		atomic.AddInt64(&c.failures, 1)
		if lerr, ok := err.(*engine.Error); ok {
			c.byCode[lerr.Code]++
		}
	}

	km.Latencies = append(km.Latencies, latency)
	c.latencies = append(c.latencies, latency)
}

func (c *Collector) GetStats() *Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	duration := time.Since(c.startTime)
	stats := &Stats{
		TotalRequests: atomic.LoadInt64(&c.total),
		TotalSuccess:  atomic.LoadInt64(&c.successes),
		TotalFailures: atomic.LoadInt64(&c.failures),
		Duration:      duration,
		KindStats:     make(map[string]*KindStats),
		ErrorsByCode:  make(map[engine.Code]int64),
	}

	if stats.TotalRequests > 0 {
		stats.SuccessRate = float64(stats.TotalSuccess) / float64(stats.TotalRequests)
		stats.RequestsPerSecond = float64(stats.TotalRequests) / duration.Seconds()
	}

	if deposits := c.byKind[engine.Deposit]; deposits != nil && deposits.Success > 0 {
		stats.DisputeRate = float64(c.disputes) / float64(deposits.Success)
		stats.ChargebackRate = float64(c.chargebacks) / float64(deposits.Success)
	}

	if len(c.latencies) > 0 {
		sorted := sortedCopy(c.latencies)
		stats.MinLatency = sorted[0]
		stats.MaxLatency = sorted[len(sorted)-1]
		stats.MedianLatency = percentile(sorted, 50)
		stats.P50Latency = percentile(sorted, 50)
		stats.P90Latency = percentile(sorted, 90)
		stats.P95Latency = percentile(sorted, 95)
		stats.P99Latency = percentile(sorted, 99)
		stats.MeanLatency = mean(sorted)
	}

	for kind, km := range c.byKind {
		ks := &KindStats{Count: atomic.LoadInt64(&km.Count)}
		if ks.Count > 0 {
			ks.SuccessRate = float64(atomic.LoadInt64(&km.Success)) / float64(ks.Count)
			if len(km.Latencies) > 0 {
				sorted := sortedCopy(km.Latencies)
				ks.MeanLatency = mean(sorted)
				ks.P99Latency = percentile(sorted, 99)
			}
		}
		stats.KindStats[kind.String()] = ks
	}

	for code, count := range c.byCode {
		stats.ErrorsByCode[code] = count
	}

	return stats
}

func sortedCopy(d []time.Duration) []time.Duration {
	sorted := make([]time.Duration, len(d))
	copy(sorted, d)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p / 100.0)
	return sorted[index]
}

func mean(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return sum / time.Duration(len(values))
}
