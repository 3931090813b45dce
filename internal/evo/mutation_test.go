package evo

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMutationZeroProbabilityIsIdentity(t *testing.T) {
	population := progenitorFixture(5, 4)

	for _, mutator := range Mutators() {
		rng := rand.New(rand.NewSource(1))
		mutated, err := mutator.Mutate(rng, population, 0)
		if err != nil {
			t.Fatalf("%s: %v", mutator.Name(), err)
		}
		if !equalPopulations(mutated, population) {
			t.Fatalf("%s with probability 0 must copy input unchanged", mutator.Name())
		}
	}
}

func TestUniformMutationReplacesEveryGene(t *testing.T) {
	population := Population{
		{5, 5, 5},
		{7, 7, 7},
	}

	rng := rand.New(rand.NewSource(2))
	mutated, err := UniformMutator{}.Mutate(rng, population, 1)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for i := range mutated {
		for j, gene := range mutated[i] {
			if gene < 0 || gene >= 1 {
				t.Fatalf("replacement gene [%d][%d] outside [0,1): %v", i, j, gene)
			}
		}
	}
}

func TestBlendMutationAveragesWithDonor(t *testing.T) {
	population := Population{
		{0.2, 0.4},
		{0.6, 0.8},
	}
	donors := []float64{0.2, 0.4, 0.6, 0.8}

	rng := rand.New(rand.NewSource(3))
	mutated, err := BlendMutator{}.Mutate(rng, population, 1)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	// Every mutated gene is the mean of its pre-mutation value and some
	// pre-mutation gene; donors are never read from partially mutated output.
	for i := range mutated {
		for j, gene := range mutated[i] {
			found := false
			for _, donor := range donors {
				if gene == (population[i][j]+donor)/2 {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("gene [%d][%d]=%v is not a mean with any input donor", i, j, gene)
			}
		}
	}
}

func TestMutationDoesNotAliasInput(t *testing.T) {
	for _, mutator := range Mutators() {
		population := progenitorFixture(3, 3)
		rng := rand.New(rand.NewSource(4))
		mutated, err := mutator.Mutate(rng, population, 0.5)
		if err != nil {
			t.Fatalf("%s: %v", mutator.Name(), err)
		}
		for i := range mutated {
			for j := range mutated[i] {
				mutated[i][j] = -99
			}
		}
		if !equalPopulations(population, progenitorFixture(3, 3)) {
			t.Fatalf("%s mutated its input", mutator.Name())
		}
	}
}

func TestMutationRejectsBadProbability(t *testing.T) {
	population := progenitorFixture(2, 2)

	for _, mutator := range Mutators() {
		rng := rand.New(rand.NewSource(5))
		if _, err := mutator.Mutate(rng, population, -0.1); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", mutator.Name(), err)
		}
	}
}
