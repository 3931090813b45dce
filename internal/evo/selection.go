package evo

import (
	"fmt"
	"math"
	"math/rand"

	"genfit/internal/dataset"
)

// Selector chooses progenitors from a population. Every returned individual
// is a full copy; implementations never alias rows of the source population.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, data dataset.Matrix, population Population, total, groupSize int) (Population, error)
}

// RouletteSelector draws distinct individuals with probability proportional
// to 1/fitness, so lower error means a higher chance of selection.
type RouletteSelector struct{}

func (RouletteSelector) Name() string {
	return "Roulette"
}

func (RouletteSelector) Select(rng *rand.Rand, data dataset.Matrix, population Population, total, _ int) (Population, error) {
	if total > len(population) {
		return nil, fmt.Errorf("%w: roulette needs %d distinct individuals from a population of %d", ErrSampling, total, len(population))
	}

	fitnesses, err := Evaluate(data, population)
	if err != nil {
		return nil, err
	}

	// A zero fitness inverts to +Inf and wins outright; among several exact
	// fits the lowest index wins first.
	weights := make([]float64, len(fitnesses))
	for i, fitness := range fitnesses {
		if fitness == 0 {
			weights[i] = math.Inf(1)
		} else {
			weights[i] = 1 / fitness
		}
	}

	remaining := make([]int, len(population))
	for i := range remaining {
		remaining[i] = i
	}

	selected := make(Population, 0, total)
	for len(selected) < total {
		pick := -1
		for pos, idx := range remaining {
			if math.IsInf(weights[idx], 1) {
				pick = pos
				break
			}
		}
		if pick < 0 {
			var sum float64
			for _, idx := range remaining {
				sum += weights[idx]
			}
			r := rng.Float64() * sum
			pick = len(remaining) - 1
			for pos, idx := range remaining {
				r -= weights[idx]
				if r < 0 {
					pick = pos
					break
				}
			}
		}
		chosen := remaining[pick]
		selected = append(selected, append(Individual(nil), population[chosen]...))
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return selected, nil
}

// TournamentSelector runs independent tournaments of groupSize distinct
// individuals and keeps each winner; the same individual may win several
// tournaments.
type TournamentSelector struct{}

func (TournamentSelector) Name() string {
	return "Tournament with replacement"
}

func (TournamentSelector) Select(rng *rand.Rand, data dataset.Matrix, population Population, total, groupSize int) (Population, error) {
	if groupSize < 1 {
		return nil, fmt.Errorf("%w: tournament size must be at least 1", ErrInvalidConfig)
	}
	if groupSize > len(population) {
		return nil, fmt.Errorf("%w: tournament of %d from a population of %d", ErrSampling, groupSize, len(population))
	}

	fitnesses, err := Evaluate(data, population)
	if err != nil {
		return nil, err
	}

	pool := make([]int, len(population))
	for i := range pool {
		pool[i] = i
	}

	selected := make(Population, 0, total)
	for i := 0; i < total; i++ {
		fighters := sampleIndices(rng, pool, groupSize)
		winner := tournamentWinner(fighters, fitnesses)
		selected = append(selected, append(Individual(nil), population[winner]...))
	}
	return selected, nil
}

// ExclusiveTournamentSelector removes each winner from the pool, so no
// individual is selected twice. Later tournaments shrink to the remaining
// pool when it falls below groupSize.
type ExclusiveTournamentSelector struct{}

func (ExclusiveTournamentSelector) Name() string {
	return "Tournament without replacement"
}

func (ExclusiveTournamentSelector) Select(rng *rand.Rand, data dataset.Matrix, population Population, total, groupSize int) (Population, error) {
	if groupSize < 1 {
		return nil, fmt.Errorf("%w: tournament size must be at least 1", ErrInvalidConfig)
	}
	if total > len(population) {
		return nil, fmt.Errorf("%w: cannot select %d distinct individuals from a population of %d", ErrSampling, total, len(population))
	}

	fitnesses, err := Evaluate(data, population)
	if err != nil {
		return nil, err
	}

	available := make([]int, len(population))
	for i := range available {
		available[i] = i
	}

	selected := make(Population, 0, total)
	for i := 0; i < total; i++ {
		size := groupSize
		if size > len(available) {
			size = len(available)
		}
		fighters := sampleIndices(rng, available, size)
		winner := tournamentWinner(fighters, fitnesses)
		selected = append(selected, append(Individual(nil), population[winner]...))
		for pos, idx := range available {
			if idx == winner {
				available = append(available[:pos], available[pos+1:]...)
				break
			}
		}
	}
	return selected, nil
}

// sampleIndices draws k distinct values from pool by partial Fisher-Yates on
// a scratch copy; pool itself is left untouched.
func sampleIndices(rng *rand.Rand, pool []int, k int) []int {
	scratch := append([]int(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:k]
}

// tournamentWinner returns the fighter with the lowest fitness; ties resolve
// to the lowest population index.
func tournamentWinner(fighters []int, fitnesses []float64) int {
	winner := fighters[0]
	for _, idx := range fighters[1:] {
		if fitnesses[idx] < fitnesses[winner] || (fitnesses[idx] == fitnesses[winner] && idx < winner) {
			winner = idx
		}
	}
	return winner
}
