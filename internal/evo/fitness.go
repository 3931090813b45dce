package evo

import (
	"fmt"

	"genfit/internal/dataset"
)

// Evaluate computes the mean squared prediction error of every individual
// against the dataset. Lower is better. The result aligns by index with the
// population.
func Evaluate(data dataset.Matrix, population Population) ([]float64, error) {
	columns := data.Columns()
	rows := data.Rows()

	fitnesses := make([]float64, len(population))
	for i, individual := range population {
		if len(individual) != columns {
			return nil, fmt.Errorf("%w: individual %d has %d genes, dataset has %d columns", ErrShapeMismatch, i, len(individual), columns)
		}
		var total float64
		for r := 0; r < rows; r++ {
			predicted := individual[0]
			for c := 0; c < columns-1; c++ {
				predicted += individual[c+1] * data.At(r, c)
			}
			residual := data.Target(r) - predicted
			total += residual * residual
		}
		fitnesses[i] = total / float64(rows)
	}
	return fitnesses, nil
}

func minIndex(values []float64) int {
	best := 0
	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}
	return best
}

func minValue(values []float64) float64 {
	return values[minIndex(values)]
}

func meanValue(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
