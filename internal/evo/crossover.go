package evo

import (
	"fmt"
	"math/rand"
)

// Crossover recombines disjoint consecutive pairs (2i, 2i+1) of progenitors.
// With probability 1-p a pair passes through unchanged. An odd trailing
// progenitor is always copied as-is. Output never aliases the input.
type Crossover interface {
	Name() string
	Cross(rng *rand.Rand, progenitors Population, probability float64) (Population, error)
}

// SinglePointCrossover swaps every gene from one random cut index onward
// between the two members of a pair.
type SinglePointCrossover struct{}

func (SinglePointCrossover) Name() string {
	return "Single point"
}

func (SinglePointCrossover) Cross(rng *rand.Rand, progenitors Population, probability float64) (Population, error) {
	if err := checkProbability(probability); err != nil {
		return nil, err
	}

	children := progenitors.Clone()
	for i := 0; i+1 < len(progenitors); i += 2 {
		if rng.Float64() >= probability {
			continue
		}
		cut := rng.Intn(len(progenitors[i]))
		for g := cut; g < len(progenitors[i]); g++ {
			children[i][g] = progenitors[i+1][g]
			children[i+1][g] = progenitors[i][g]
		}
	}
	return children, nil
}

// TwoPointCrossover swaps the gene segment [c1, c2) between the two members
// of a pair, with c1 <= c2 both drawn inside the gene range.
type TwoPointCrossover struct{}

func (TwoPointCrossover) Name() string {
	return "Two points"
}

func (TwoPointCrossover) Cross(rng *rand.Rand, progenitors Population, probability float64) (Population, error) {
	if err := checkProbability(probability); err != nil {
		return nil, err
	}

	children := progenitors.Clone()
	for i := 0; i+1 < len(progenitors); i += 2 {
		if rng.Float64() >= probability {
			continue
		}
		genes := len(progenitors[i])
		first := rng.Intn(genes)
		second := first + rng.Intn(genes-first)
		for g := first; g < second; g++ {
			children[i][g] = progenitors[i+1][g]
			children[i+1][g] = progenitors[i][g]
		}
	}
	return children, nil
}

func checkProbability(probability float64) error {
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidConfig, probability)
	}
	return nil
}
