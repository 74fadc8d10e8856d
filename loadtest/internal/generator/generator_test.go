package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-banking/loadtest/internal/generator"
)

func TestDefaultScenarioValidates(t *testing.T) {
	require.NoError(t, generator.DefaultScenario().Validate())
	require.NoError(t, generator.HighDisputeScenario().Validate())
	require.NoError(t, generator.ReadHeavyScenario().Validate())
}

func TestGeneratorProducesOnlyKnownKinds(t *testing.T) {
	scenario := generator.DefaultScenario()
	gen := generator.New(scenario, 42)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tx := gen.Next()
		seen[tx.Kind.String()] = true
		assert.NotEqual(t, "unknown", tx.Kind.String())
		assert.NotZero(t, tx.Client)
	}

	assert.True(t, seen["deposit"])
}

func TestGeneratorFallsBackToDepositWithoutOpenTx(t *testing.T) {
	scenario := &generator.Scenario{
		Name:             "dispute-only",
		Clients:          1,
		TargetOperations: 10,
		Distribution:     map[generator.OperationType]float64{generator.OpDispute: 1.0},
		MinAmount:        1,
		MaxAmount:        10,
	}
	gen := generator.New(scenario, 7)

	tx := gen.Next()
	assert.Equal(t, "deposit", tx.Kind.String())
}
