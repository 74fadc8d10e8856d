// Package metrics exposes the ledger engine's operational counters via
// Prometheus, and implements ledger.Observer so the engine itself never
// depends on this package.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ledgerengine/internal/ledger"
)

// Recorder wraps a private prometheus.Registry holding the ledger's
// counters and histogram. A private registry (rather than the global
// default) keeps repeated engine construction in tests from panicking on
// duplicate registration.
type Recorder struct {
	registry *prometheus.Registry

	transactions  *prometheus.CounterVec
	duplicateTx   prometheus.Counter
	knownClients  prometheus.Gauge
	applyDuration prometheus.Histogram
}

// NewRecorder builds a Recorder and registers its collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Transactions applied, labeled by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duplicateTx: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_duplicate_tx_total",
			Help: "Transactions rejected for reusing a known transaction id.",
		}),
		knownClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_known_clients",
			Help: "Distinct client ids seen so far.",
		}),
		applyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_apply_duration_seconds",
			Help:    "Time spent applying a single transaction.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(r.transactions, r.duplicateTx, r.knownClients, r.applyDuration)
	return r
}

// Registry exposes the underlying registry for the metrics HTTP server.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe implements ledger.Observer.
func (r *Recorder) Observe(tx ledger.Transaction, err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		if lerr, ok := err.(*ledger.Error); ok && lerr.Code == ledger.CodeDuplicateTxID {
			r.duplicateTx.Inc()
		}
	}
	r.transactions.WithLabelValues(tx.Kind.String(), outcome).Inc()
	r.applyDuration.Observe(d.Seconds())
}

// SetKnownClients updates the known-client gauge, typically called once
// after the input stream has drained.
func (r *Recorder) SetKnownClients(n int) {
	r.knownClients.Set(float64(n))
}
