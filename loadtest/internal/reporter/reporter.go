// Package reporter turns a completed run's collector stats into a summary
// report, adapted from the teacher's perf-test reporter with the
// process-level system metrics section dropped — there is no separate API
// process to sample here, load and ledger share one process.
package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	engine "ledgerengine/pkg/ledgerengine"

	"github.com/core-banking/loadtest/internal/config"
	"github.com/core-banking/loadtest/internal/generator"
	"github.com/core-banking/loadtest/internal/metrics"
)

type Report struct {
	TestName      string              `json:"test_name"`
	StartTime     time.Time           `json:"start_time"`
	EndTime       time.Time           `json:"end_time"`
	Duration      time.Duration       `json:"duration"`
	Configuration *config.Config      `json:"configuration"`
	Scenario      *generator.Scenario `json:"scenario"`
	Performance   *PerformanceMetrics `json:"performance"`
	Summary       *Summary            `json:"summary"`
	Errors        []ErrorDetail       `json:"errors,omitempty"`
}

type PerformanceMetrics struct {
	TotalRequests      int64                  `json:"total_requests"`
	SuccessfulRequests int64                  `json:"successful_requests"`
	FailedRequests     int64                  `json:"failed_requests"`
	SuccessRate        float64                `json:"success_rate"`
	RequestsPerSecond  float64                `json:"requests_per_second"`
	Latency            *LatencyMetrics        `json:"latency"`
	Kinds              map[string]*KindReport `json:"kinds"`
	// DisputeRate and ChargebackRate are fractions of settled deposits,
	// not of all requests — see metrics.Stats.
	DisputeRate    float64 `json:"dispute_rate"`
	ChargebackRate float64 `json:"chargeback_rate"`
}

type LatencyMetrics struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P95    time.Duration `json:"p95"`
	P99    time.Duration `json:"p99"`
}

// KindReport is the per-transaction-kind breakdown of one report, named
// for what it reports on (deposit, withdrawal, dispute, resolve,
// chargeback) rather than a generic "operation".
type KindReport struct {
	Count       int64         `json:"count"`
	SuccessRate float64       `json:"success_rate"`
	MeanLatency time.Duration `json:"mean_latency"`
	P99Latency  time.Duration `json:"p99_latency"`
}

type Summary struct {
	Status          string   `json:"status"`
	TotalOperations int64    `json:"total_operations"`
	Throughput      float64  `json:"throughput_ops_per_sec"`
	P99Latency      string   `json:"p99_latency"`
	ErrorRate       float64  `json:"error_rate"`
	Bottlenecks     []string `json:"bottlenecks,omitempty"`
}

// ErrorDetail reports one rejection code (spec §4.3.4's structured Error
// taxonomy), not an arbitrary error string.
type ErrorDetail struct {
	Code       engine.Code `json:"code"`
	Count      int64       `json:"count"`
	Percentage float64     `json:"percentage"`
}

func Generate(stats *metrics.Stats, scenario *generator.Scenario, cfg *config.Config) *Report {
	endTime := time.Now()
	startTime := endTime.Add(-stats.Duration)

	report := &Report{
		TestName:      scenario.Name,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      stats.Duration,
		Configuration: cfg,
		Scenario:      scenario,
		Performance:   generatePerformanceMetrics(stats),
		Errors:        generateErrorDetails(stats),
	}
	report.Summary = generateSummary(report)
	return report
}

func generatePerformanceMetrics(stats *metrics.Stats) *PerformanceMetrics {
	perf := &PerformanceMetrics{
		TotalRequests:      stats.TotalRequests,
		SuccessfulRequests: stats.TotalSuccess,
		FailedRequests:     stats.TotalFailures,
		SuccessRate:        stats.SuccessRate,
		RequestsPerSecond:  stats.RequestsPerSecond,
		Latency: &LatencyMetrics{
			Min:    stats.MinLatency,
			Max:    stats.MaxLatency,
			Mean:   stats.MeanLatency,
			Median: stats.MedianLatency,
			P50:    stats.P50Latency,
			P90:    stats.P90Latency,
			P95:    stats.P95Latency,
			P99:    stats.P99Latency,
		},
		Kinds:          make(map[string]*KindReport),
		DisputeRate:    stats.DisputeRate,
		ChargebackRate: stats.ChargebackRate,
	}

	for kind, kindStats := range stats.KindStats {
		perf.Kinds[kind] = &KindReport{
			Count:       kindStats.Count,
			SuccessRate: kindStats.SuccessRate,
			MeanLatency: kindStats.MeanLatency,
			P99Latency:  kindStats.P99Latency,
		}
	}
	return perf
}

func generateErrorDetails(stats *metrics.Stats) []ErrorDetail {
	var errs []ErrorDetail
	for code, count := range stats.ErrorsByCode {
		errs = append(errs, ErrorDetail{
			Code:       code,
			Count:      count,
			Percentage: float64(count) / float64(stats.TotalRequests) * 100,
		})
	}
	return errs
}

func generateSummary(report *Report) *Summary {
	summary := &Summary{
		Status:          determineStatus(report),
		TotalOperations: report.Performance.TotalRequests,
		Throughput:      report.Performance.RequestsPerSecond,
		P99Latency:      formatDuration(report.Performance.Latency.P99),
		ErrorRate:       (1 - report.Performance.SuccessRate) * 100,
	}
	summary.Bottlenecks = identifyBottlenecks(report)
	return summary
}

func determineStatus(report *Report) string {
	switch {
	case report.Performance.SuccessRate >= 0.99 && report.Performance.Latency.P99 < 10*time.Millisecond:
		return "EXCELLENT"
	case report.Performance.SuccessRate >= 0.95 && report.Performance.Latency.P99 < 50*time.Millisecond:
		return "GOOD"
	case report.Performance.SuccessRate >= 0.90:
		return "ACCEPTABLE"
	default:
		return "NEEDS_IMPROVEMENT"
	}
}

func identifyBottlenecks(report *Report) []string {
	var bottlenecks []string
	if report.Performance.Latency.P99 > 100*time.Millisecond {
		bottlenecks = append(bottlenecks, "high p99 apply latency")
	}
	if report.Performance.SuccessRate < 0.95 {
		bottlenecks = append(bottlenecks, "rejection rate above 5%")
	}
	if report.Performance.ChargebackRate > 0.10 {
		bottlenecks = append(bottlenecks, "chargeback rate above 10% of settled deposits")
	}
	for kind, m := range report.Performance.Kinds {
		if m.P99Latency > 100*time.Millisecond {
			bottlenecks = append(bottlenecks, fmt.Sprintf("%s transactions showing high latency", kind))
		}
	}
	return bottlenecks
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1_000_000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func SaveReport(report *Report, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("report saved to: %s\n", path)
	return nil
}

func PrintSummary(report *Report) {
	fmt.Printf("\n=== Load Test Summary ===\n")
	fmt.Printf("Test:       %s\n", report.TestName)
	fmt.Printf("Duration:   %.2fs\n", report.Duration.Seconds())
	fmt.Printf("Status:     %s\n", report.Summary.Status)
	fmt.Printf("Requests:   %d\n", report.Performance.TotalRequests)
	fmt.Printf("Success:    %.2f%%\n", report.Performance.SuccessRate*100)
	fmt.Printf("Throughput: %.2f ops/sec\n", report.Performance.RequestsPerSecond)
	fmt.Printf("P99:        %s\n", report.Summary.P99Latency)
	fmt.Printf("Disputes:   %.2f%% of settled deposits\n", report.Performance.DisputeRate*100)
	fmt.Printf("Chargebacks: %.2f%% of settled deposits\n", report.Performance.ChargebackRate*100)

	for kind, m := range report.Performance.Kinds {
		fmt.Printf("  %s: count=%d success=%.2f%% p99=%s\n", kind, m.Count, m.SuccessRate*100, formatDuration(m.P99Latency))
	}

	for _, b := range report.Summary.Bottlenecks {
		fmt.Printf("bottleneck: %s\n", b)
	}
}
