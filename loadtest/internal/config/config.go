package config

import "time"

// Config controls one load-test run. It mirrors the teacher's perf-test
// Config, minus the fields that only made sense against a remote HTTP API
// (APIURL, PrometheusURL, IsolateMetrics).
type Config struct {
	Workers    int
	Duration   time.Duration
	RampUp     time.Duration
	ReportPath string
}
