// Package executor drives a generated transaction stream directly into an
// in-process ledger engine. The teacher's executor issued HTTP requests
// against a remote API and relied on a worker pool for concurrency; this
// ledger has no wire API to call (spec forbids one) and its engine is
// single-consumer by design, so there is one executor feeding one engine,
// not a pool of them.
package executor

import (
	"context"
	"time"

	engine "ledgerengine/pkg/ledgerengine"

	"github.com/core-banking/loadtest/internal/generator"
)

// Executor applies generated transactions straight into the engine. Every
// call's outcome reaches whatever Observer the Engine was constructed
// with (see metrics.Collector, which implements engine.Observer) — the
// executor itself records nothing.
type Executor struct {
	engine    *engine.Engine
	generator *generator.Generator
}

func New(eng *engine.Engine, gen *generator.Generator) *Executor {
	return &Executor{engine: eng, generator: gen}
}

// Run applies generated transactions until target operations have been
// produced or ctx is cancelled.
func (e *Executor) Run(ctx context.Context, target int64, thinkTime time.Duration) {
	var count int64
	for count < target {
		select {
		case <-ctx.Done():
			return
		default:
		}

		tx := e.generator.Next()
		_ = e.engine.Apply(tx)
		count++

		if thinkTime > 0 {
			time.Sleep(thinkTime)
		}
	}
}
