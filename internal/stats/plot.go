package stats

import (
	"encoding/json"
	"fmt"

	"genfit/internal/model"
)

// PlotPoint is one sample of a fitness curve.
type PlotPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// FitnessPlot is the renderable form of a run's fitness history: one point
// per generation for the best and average series, plus a caption describing
// the run. Encoded it travels as the opaque plot artifact on a result record.
type FitnessPlot struct {
	Title   string      `json:"title"`
	XLabel  string      `json:"x_label"`
	YLabel  string      `json:"y_label"`
	Best    []PlotPoint `json:"best"`
	Average []PlotPoint `json:"average"`
}

// BuildFitnessPlot turns a fitness history into plot series. The caption
// carries the run parameters the way the results table displays them.
func BuildFitnessPlot(record model.Result, history model.FitnessHistory) FitnessPlot {
	title := fmt.Sprintf(
		"%d iterations, %d individuals, %s crossover, %s mutation, %s progenitor selection, %g%% crossover, %g%% mutation, %d seed",
		record.Iterations,
		record.IndividualCount,
		record.Crossover,
		record.Mutation,
		record.Selection,
		record.CrossoverProbability*100,
		record.MutationProbability*100,
		record.Seed,
	)
	return FitnessPlot{
		Title:   title,
		XLabel:  "Iteration",
		YLabel:  "Fitness",
		Best:    buildSeries(history.Best),
		Average: buildSeries(history.Average),
	}
}

func buildSeries(values []float64) []PlotPoint {
	points := make([]PlotPoint, len(values))
	for i, value := range values {
		points[i] = PlotPoint{Index: i, Value: value}
	}
	return points
}

func (p FitnessPlot) Encode() ([]byte, error) {
	return json.Marshal(p)
}

func DecodeFitnessPlot(data []byte) (FitnessPlot, error) {
	var plot FitnessPlot
	if err := json.Unmarshal(data, &plot); err != nil {
		return FitnessPlot{}, fmt.Errorf("decode fitness plot: %w", err)
	}
	return plot, nil
}
