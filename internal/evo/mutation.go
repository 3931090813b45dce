package evo

import "math/rand"

// Mutator perturbs genes independently: every gene is its own Bernoulli
// trial, with no ordering dependency between genes. Output never aliases the
// input.
type Mutator interface {
	Name() string
	Mutate(rng *rand.Rand, population Population, probability float64) (Population, error)
}

// UniformMutator replaces a mutated gene with a fresh uniform value in [0,1).
type UniformMutator struct{}

func (UniformMutator) Name() string {
	return "Uniform"
}

func (UniformMutator) Mutate(rng *rand.Rand, population Population, probability float64) (Population, error) {
	if err := checkProbability(probability); err != nil {
		return nil, err
	}

	mutated := population.Clone()
	for i := range mutated {
		for j := range mutated[i] {
			if rng.Float64() < probability {
				mutated[i][j] = rng.Float64()
			}
		}
	}
	return mutated, nil
}

// BlendMutator replaces a mutated gene with the arithmetic mean of its
// current value and a random donor gene. Donors are read from the input
// population, never from partially mutated output.
type BlendMutator struct{}

func (BlendMutator) Name() string {
	return "Non-uniform"
}

func (BlendMutator) Mutate(rng *rand.Rand, population Population, probability float64) (Population, error) {
	if err := checkProbability(probability); err != nil {
		return nil, err
	}

	mutated := population.Clone()
	for i := range mutated {
		for j := range mutated[i] {
			if rng.Float64() < probability {
				donorRow := rng.Intn(len(population))
				donorCol := rng.Intn(len(population[donorRow]))
				mutated[i][j] = (population[i][j] + population[donorRow][donorCol]) / 2
			}
		}
	}
	return mutated, nil
}
