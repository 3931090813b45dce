package evo

import (
	"fmt"
	"math"
	"math/rand"

	"genfit/internal/dataset"
	"genfit/internal/model"
)

// Config holds everything one experiment run needs. All randomness flows
// from one generator seeded with Seed; reseeding mid-run is not supported.
type Config struct {
	Data                 dataset.Matrix
	Seed                 int64
	IndividualCount      int
	Iterations           int
	Selector             Selector
	Crossover            Crossover
	Mutator              Mutator
	CrossoverProbability float64
	MutationProbability  float64
}

// RunResult pairs the persisted record with the per-generation fitness
// series. The record's Plot field is filled by the caller; the engine only
// produces numbers.
type RunResult struct {
	Record  model.Result
	History model.FitnessHistory
}

func (c Config) validate() error {
	if c.Data.Rows() == 0 {
		return fmt.Errorf("%w: dataset is empty", ErrInvalidConfig)
	}
	if c.Selector == nil || c.Crossover == nil || c.Mutator == nil {
		return fmt.Errorf("%w: all three operators are required", ErrInvalidConfig)
	}
	if c.IndividualCount < 2 {
		return fmt.Errorf("%w: individual count must be at least 2, got %d", ErrInvalidConfig, c.IndividualCount)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return fmt.Errorf("%w: crossover probability %v outside [0,1]", ErrInvalidConfig, c.CrossoverProbability)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return fmt.Errorf("%w: mutation probability %v outside [0,1]", ErrInvalidConfig, c.MutationProbability)
	}
	return nil
}

// Run executes the generational loop: selection, crossover, mutation, then
// re-evaluation of the progenitors+children population, recording best and
// average fitness per generation. The population starts at IndividualCount
// rows and holds 2*IndividualCount from the first generation onward, because
// selection keeps IndividualCount progenitors and crossover produces as many
// children.
func Run(cfg Config) (RunResult, error) {
	if err := cfg.validate(); err != nil {
		return RunResult{}, err
	}

	crossoverProbability := roundProbability(cfg.CrossoverProbability)
	mutationProbability := roundProbability(cfg.MutationProbability)

	rng := rand.New(rand.NewSource(cfg.Seed))
	groupSize := cfg.IndividualCount / 2

	population := NewRandomPopulation(rng, cfg.IndividualCount, cfg.Data.Columns())
	bestFitnesses := make([]float64, cfg.Iterations)
	averageFitnesses := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		progenitors, err := cfg.Selector.Select(rng, cfg.Data, population, cfg.IndividualCount, groupSize)
		if err != nil {
			return RunResult{}, fmt.Errorf("generation %d selection: %w", i, err)
		}
		children, err := cfg.Crossover.Cross(rng, progenitors, crossoverProbability)
		if err != nil {
			return RunResult{}, fmt.Errorf("generation %d crossover: %w", i, err)
		}
		children, err = cfg.Mutator.Mutate(rng, children, mutationProbability)
		if err != nil {
			return RunResult{}, fmt.Errorf("generation %d mutation: %w", i, err)
		}
		population = Concat(progenitors, children)

		fitnesses, err := Evaluate(cfg.Data, population)
		if err != nil {
			return RunResult{}, fmt.Errorf("generation %d evaluation: %w", i, err)
		}
		bestFitnesses[i] = minValue(fitnesses)
		averageFitnesses[i] = meanValue(fitnesses)
	}

	fitnesses, err := Evaluate(cfg.Data, population)
	if err != nil {
		return RunResult{}, fmt.Errorf("final evaluation: %w", err)
	}
	bestIndex := minIndex(fitnesses)

	versioned := model.VersionedRecord{
		SchemaVersion: model.CurrentSchemaVersion,
		CodecVersion:  model.CurrentCodecVersion,
	}
	record := model.Result{
		VersionedRecord:      versioned,
		Dataset:              cfg.Data.Name(),
		Seed:                 cfg.Seed,
		IndividualCount:      cfg.IndividualCount,
		Iterations:           cfg.Iterations,
		CrossoverProbability: crossoverProbability,
		MutationProbability:  mutationProbability,
		Selection:            cfg.Selector.Name(),
		Crossover:            cfg.Crossover.Name(),
		Mutation:             cfg.Mutator.Name(),
		BestFitness:          fitnesses[bestIndex],
		BestIndividual:       population[bestIndex].String(),
	}
	history := model.FitnessHistory{
		VersionedRecord: versioned,
		Best:            bestFitnesses,
		Average:         averageFitnesses,
	}
	return RunResult{Record: record, History: history}, nil
}

func roundProbability(p float64) float64 {
	return math.Round(p*1e5) / 1e5
}
