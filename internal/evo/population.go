package evo

import (
	"math/rand"
	"strconv"
	"strings"
)

// Individual is one candidate weight vector: index 0 is the bias term,
// indices 1..n are per-feature weights.
type Individual []float64

// Population is an ordered set of individuals, one per row.
type Population []Individual

// NewRandomPopulation draws every gene uniformly from [0,1) in row-major
// order, one individual per row with genes = features+1.
func NewRandomPopulation(rng *rand.Rand, individuals, genes int) Population {
	population := make(Population, individuals)
	for i := range population {
		individual := make(Individual, genes)
		for j := range individual {
			individual[j] = rng.Float64()
		}
		population[i] = individual
	}
	return population
}

// Clone deep-copies the population so callers can never alias rows across
// generations.
func (p Population) Clone() Population {
	cloned := make(Population, len(p))
	for i, individual := range p {
		cloned[i] = append(Individual(nil), individual...)
	}
	return cloned
}

// Concat builds a fresh population from progenitors followed by children.
func Concat(progenitors, children Population) Population {
	combined := make(Population, 0, len(progenitors)+len(children))
	for _, individual := range progenitors {
		combined = append(combined, append(Individual(nil), individual...))
	}
	for _, individual := range children {
		combined = append(combined, append(Individual(nil), individual...))
	}
	return combined
}

// String renders an individual at fixed precision, the form stored on a
// result record.
func (ind Individual) String() string {
	parts := make([]string, len(ind))
	for i, gene := range ind {
		parts[i] = strconv.FormatFloat(gene, 'f', 5, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
