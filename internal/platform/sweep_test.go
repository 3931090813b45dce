package platform

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genfit/internal/evo"
)

func baseSettings() ExperimentSettings {
	return ExperimentSettings{
		Count:                1,
		Dataset:              "line.dat",
		Seed:                 1,
		Selection:            "Roulette",
		Crossover:            "Single point",
		Mutation:             "Uniform",
		IndividualCount:      10,
		Iterations:           5,
		CrossoverProbability: 0.8,
		MutationProbability:  0.1,
	}
}

func TestParseSweepConfig(t *testing.T) {
	input := `
concurrency: 2
experiments:
  - count: 3
    dataset: line.dat
    seed: 1
    selection: Roulette
    crossover: Single point
    mutation: Uniform
    individual_count: 10
    individual_count_step: 2
    iterations: 5
    crossover_probability: 0.8
    mutation_probability: 0.1
`
	cfg, err := ParseSweepConfig(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Concurrency)
	require.Len(t, cfg.Experiments, 1)
	assert.Equal(t, 3, cfg.Experiments[0].Count)
	assert.Equal(t, 2, cfg.Experiments[0].IndividualCountStep)
}

func TestParseSweepConfigDefaultsCount(t *testing.T) {
	input := `
experiments:
  - dataset: line.dat
    selection: Roulette
    crossover: Single point
    mutation: Uniform
    individual_count: 10
    iterations: 5
`
	cfg, err := ParseSweepConfig(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Experiments[0].Count)
}

func TestParseSweepConfigErrors(t *testing.T) {
	_, err := ParseSweepConfig(strings.NewReader("experiments: []"))
	assert.ErrorIs(t, err, evo.ErrInvalidConfig)

	_, err = ParseSweepConfig(strings.NewReader("unknown_field: true"))
	assert.Error(t, err)
}

func TestRunSweepExpandsBlocks(t *testing.T) {
	runner := newTestRunner(t)

	first := baseSettings()
	first.Count = 2
	first.IterationsStep = 3

	second := baseSettings()
	second.Count = 2
	second.Seed = 9
	second.Selection = "Tournament with replacement"

	var streamed []int
	outcome, err := runner.RunSweep(context.Background(), SweepConfig{
		Concurrency: 2,
		Experiments: []ExperimentSettings{first, second},
	}, func(r SweepResult) {
		streamed = append(streamed, r.Index)
	})
	require.NoError(t, err)
	require.NotEmpty(t, outcome.ID)
	assert.False(t, outcome.Cancelled)
	assert.Empty(t, outcome.Failures)
	require.Len(t, outcome.Results, 4)
	assert.Len(t, streamed, 4)

	for i, result := range outcome.Results {
		assert.Equal(t, i, result.Index)
	}
	// Block expansion applies the per-run step.
	assert.Equal(t, 5, outcome.Results[0].Record.Iterations)
	assert.Equal(t, 8, outcome.Results[1].Record.Iterations)

	// Every completed run is persisted.
	for _, result := range outcome.Results {
		_, ok, err := runner.Store.GetResult(context.Background(), result.Record.CalculateHash())
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRunSweepClampsExpandedValues(t *testing.T) {
	runner := newTestRunner(t)

	settings := baseSettings()
	settings.Count = 2
	settings.CrossoverProbability = 0.9
	settings.CrossoverProbabilityStep = 0.5
	settings.MutationProbability = 0.05
	settings.MutationProbabilityStep = -0.2
	settings.IndividualCount = 4
	settings.IndividualCountStep = -3

	outcome, err := runner.RunSweep(context.Background(), SweepConfig{
		Experiments: []ExperimentSettings{settings},
	}, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)

	expanded := outcome.Results[1].Record
	assert.Equal(t, 1.0, expanded.CrossoverProbability)
	assert.Equal(t, 0.0, expanded.MutationProbability)
	assert.Equal(t, 2, expanded.IndividualCount)
}

func TestRunSweepRecordsFailuresAndContinues(t *testing.T) {
	runner := newTestRunner(t)

	bad := baseSettings()
	bad.Selection = "Ranked"

	good := baseSettings()
	good.Seed = 5

	outcome, err := runner.RunSweep(context.Background(), SweepConfig{
		Experiments: []ExperimentSettings{bad, good},
	}, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Failures, 1)
	assert.ErrorIs(t, outcome.Failures[0].Err, evo.ErrInvalidConfig)
	assert.Equal(t, 0, outcome.Failures[0].Index)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, 1, outcome.Results[0].Index)
}

func TestRunSweepMissingDatasetFails(t *testing.T) {
	runner := newTestRunner(t)

	settings := baseSettings()
	settings.Dataset = "absent.dat"

	outcome, err := runner.RunSweep(context.Background(), SweepConfig{
		Experiments: []ExperimentSettings{settings},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	require.Len(t, outcome.Failures, 1)
}

func TestRunSweepCancellation(t *testing.T) {
	runner := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	settings := baseSettings()
	settings.Count = 3

	outcome, err := runner.RunSweep(ctx, SweepConfig{
		Experiments: []ExperimentSettings{settings},
	}, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Cancelled)
	assert.Empty(t, outcome.Results)
}

func TestRunSweepRejectsEmptyConfig(t *testing.T) {
	runner := newTestRunner(t)
	_, err := runner.RunSweep(context.Background(), SweepConfig{}, nil)
	assert.ErrorIs(t, err, evo.ErrInvalidConfig)
}
