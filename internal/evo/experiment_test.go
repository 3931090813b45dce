package evo

import (
	"errors"
	"testing"

	"genfit/internal/dataset"
)

func specimenConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Data:                 mustMatrix(t, [][]float64{{0, 0}, {1, 2}, {2, 4}, {3, 6}}),
		Seed:                 1,
		IndividualCount:      20,
		Iterations:           10,
		Selector:             RouletteSelector{},
		Crossover:            SinglePointCrossover{},
		Mutator:              UniformMutator{},
		CrossoverProbability: 0.8,
		MutationProbability:  0.1,
	}
}

func TestRunValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dataset", func(c *Config) { c.Data = dataset.Matrix{} }},
		{"nil selector", func(c *Config) { c.Selector = nil }},
		{"nil crossover", func(c *Config) { c.Crossover = nil }},
		{"nil mutator", func(c *Config) { c.Mutator = nil }},
		{"too few individuals", func(c *Config) { c.IndividualCount = 1 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"crossover probability", func(c *Config) { c.CrossoverProbability = 1.1 }},
		{"mutation probability", func(c *Config) { c.MutationProbability = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := specimenConfig(t)
			tc.mutate(&cfg)
			if _, err := Run(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunRecordFields(t *testing.T) {
	cfg := specimenConfig(t)
	cfg.CrossoverProbability = 0.800004
	cfg.MutationProbability = 0.099996

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	record := result.Record
	if record.Dataset != "test.dat" || record.Seed != 1 {
		t.Fatalf("unexpected identity: %+v", record)
	}
	if record.CrossoverProbability != 0.8 {
		t.Fatalf("crossover probability not rounded to 5 decimals: %v", record.CrossoverProbability)
	}
	if record.MutationProbability != 0.1 {
		t.Fatalf("mutation probability not rounded to 5 decimals: %v", record.MutationProbability)
	}
	if record.Selection != "Roulette" || record.Crossover != "Single point" || record.Mutation != "Uniform" {
		t.Fatalf("unexpected operator names: %+v", record)
	}
	if record.BestIndividual == "" || record.BestIndividual[0] != '[' {
		t.Fatalf("unexpected best individual string: %q", record.BestIndividual)
	}
	if len(result.History.Best) != cfg.Iterations || len(result.History.Average) != cfg.Iterations {
		t.Fatalf("history length mismatch: %d/%d", len(result.History.Best), len(result.History.Average))
	}
	for i := range result.History.Best {
		if result.History.Best[i] > result.History.Average[i] {
			t.Fatalf("generation %d: best fitness above the average", i)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for _, selector := range Selectors() {
		for _, crossover := range Crossovers() {
			for _, mutator := range Mutators() {
				cfg := specimenConfig(t)
				cfg.Selector = selector
				cfg.Crossover = crossover
				cfg.Mutator = mutator

				first, err := Run(cfg)
				if err != nil {
					t.Fatalf("%s/%s/%s: %v", selector.Name(), crossover.Name(), mutator.Name(), err)
				}
				second, err := Run(cfg)
				if err != nil {
					t.Fatalf("%s/%s/%s rerun: %v", selector.Name(), crossover.Name(), mutator.Name(), err)
				}

				if first.Record.BestFitness != second.Record.BestFitness {
					t.Fatalf("%s/%s/%s: best fitness differs across identical runs", selector.Name(), crossover.Name(), mutator.Name())
				}
				if first.Record.CalculateHash() != second.Record.CalculateHash() {
					t.Fatalf("%s/%s/%s: hash differs across identical runs", selector.Name(), crossover.Name(), mutator.Name())
				}
				for i := range first.History.Best {
					if first.History.Best[i] != second.History.Best[i] || first.History.Average[i] != second.History.Average[i] {
						t.Fatalf("%s/%s/%s: fitness curves differ at generation %d", selector.Name(), crossover.Name(), mutator.Name(), i)
					}
				}
			}
		}
	}
}

func TestRunSeedChangesOutcome(t *testing.T) {
	cfg := specimenConfig(t)
	first, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	cfg.Seed = 2
	second, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if first.Record.CalculateHash() == second.Record.CalculateHash() {
		t.Fatal("different seeds must produce different records")
	}
}

func TestRunConvergesOnRepresentableTarget(t *testing.T) {
	// target = 0.3 constant; the exact fit (bias 0.3, weight 0) lies inside
	// [0,1), the interval initialization and both mutators draw from.
	cfg := Config{
		Data:                 mustMatrix(t, [][]float64{{0.1, 0.3}, {0.2, 0.3}, {0.3, 0.3}, {0.4, 0.3}}),
		Seed:                 1,
		IndividualCount:      20,
		Iterations:           500,
		Selector:             TournamentSelector{},
		Crossover:            SinglePointCrossover{},
		Mutator:              UniformMutator{},
		CrossoverProbability: 0.8,
		MutationProbability:  0.1,
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	bestSeen := result.History.Best[0]
	for _, best := range result.History.Best {
		if best < bestSeen {
			bestSeen = best
		}
	}
	if bestSeen >= 1e-3 {
		t.Fatalf("expected convergence below 1e-3, best seen %v", bestSeen)
	}
	if result.Record.BestFitness >= 1e-2 {
		t.Fatalf("final best fitness did not converge: %v", result.Record.BestFitness)
	}
}

func TestRunOddIndividualCount(t *testing.T) {
	cfg := specimenConfig(t)
	cfg.IndividualCount = 5

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.History.Best) != cfg.Iterations {
		t.Fatalf("unexpected history length: %d", len(result.History.Best))
	}
}
