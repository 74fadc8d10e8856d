package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	engine "ledgerengine/pkg/ledgerengine"

	"github.com/core-banking/loadtest/internal/config"
	"github.com/core-banking/loadtest/internal/executor"
	"github.com/core-banking/loadtest/internal/generator"
	"github.com/core-banking/loadtest/internal/metrics"
	"github.com/core-banking/loadtest/internal/reporter"
	"github.com/core-banking/loadtest/internal/server"
)

func main() {
	var (
		scenarioName = flag.String("scenario", "default", "Scenario: default, dispute-heavy, or deposit-heavy")
		duration     = flag.Duration("duration", 30*time.Second, "Test duration cap")
		thinkTime    = flag.Duration("think-time", 0, "Pause between applied transactions")
		reportPath   = flag.String("report", "./reports", "Path to save reports")
		dashboard    = flag.Bool("dashboard", false, "Serve a live websocket dashboard while the run executes")
		dashboardPort = flag.Int("dashboard-port", 9999, "Dashboard port, when -dashboard is set")
		seed         = flag.Int64("seed", 1, "Deterministic generator seed")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down...")
		cancel()
	}()

	scenario := selectScenario(*scenarioName)

	cfg := &config.Config{
		Duration:   *duration,
		ReportPath: *reportPath,
	}

	collector := metrics.NewCollector()
	eng := engine.New(engine.WithObserver(collector))
	gen := generator.New(scenario, *seed)
	exec := executor.New(eng, gen)

	if *dashboard {
		dash := server.New(collector, *dashboardPort)
		go func() {
			if err := dash.Start(ctx); err != nil {
				log.Printf("dashboard error: %v", err)
			}
		}()
	}

	runCtx, runCancel := context.WithTimeout(ctx, cfg.Duration)
	defer runCancel()

	log.Printf("starting load test %q targeting %d operations (cap %v)", scenario.Name, scenario.TargetOperations, cfg.Duration)
	exec.Run(runCtx, scenario.TargetOperations, *thinkTime)

	stats := collector.GetStats()
	report := reporter.Generate(stats, scenario, cfg)

	reportFile := fmt.Sprintf("%s/report_%d.json", cfg.ReportPath, time.Now().Unix())
	if err := reporter.SaveReport(report, reportFile); err != nil {
		log.Printf("failed to save report: %v", err)
	}

	reporter.PrintSummary(report)
}

func selectScenario(name string) *generator.Scenario {
	switch name {
	case "dispute-heavy":
		return generator.HighDisputeScenario()
	case "deposit-heavy":
		return generator.ReadHeavyScenario()
	default:
		return generator.DefaultScenario()
	}
}
