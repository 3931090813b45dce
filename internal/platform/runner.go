package platform

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"genfit/internal/dataset"
	"genfit/internal/evo"
	"genfit/internal/stats"
	"genfit/internal/storage"
)

var ErrPersist = errors.New("result not persisted")

// Runner executes experiments against a dataset directory and persists each
// completed result under its content hash.
type Runner struct {
	Store      storage.Store
	DatasetDir string
}

// LoadDataset resolves a dataset filename inside the runner's dataset
// directory. An absolute path is used as-is.
func (r *Runner) LoadDataset(name string) (dataset.Matrix, error) {
	path := name
	if !filepath.IsAbs(path) && r.DatasetDir != "" {
		path = filepath.Join(r.DatasetDir, name)
	}
	m, err := dataset.Load(path)
	if err != nil {
		return dataset.Matrix{}, err
	}
	return m, nil
}

// RunOne executes a single experiment, attaches the fitness-curve artifact,
// and persists record and history. A persistence failure still returns the
// completed run, wrapped in ErrPersist so callers can flag it.
func (r *Runner) RunOne(ctx context.Context, cfg evo.Config) (evo.RunResult, error) {
	if err := ctx.Err(); err != nil {
		return evo.RunResult{}, err
	}

	result, err := evo.Run(cfg)
	if err != nil {
		return evo.RunResult{}, err
	}

	plot, err := stats.BuildFitnessPlot(result.Record, result.History).Encode()
	if err != nil {
		return evo.RunResult{}, fmt.Errorf("encode fitness plot: %w", err)
	}
	result.Record.Plot = plot

	if r.Store != nil {
		hash := result.Record.CalculateHash()
		if err := r.Store.SaveResult(ctx, result.Record); err != nil {
			return result, fmt.Errorf("%w: %v", ErrPersist, err)
		}
		if err := r.Store.SaveFitnessHistory(ctx, hash, result.History); err != nil {
			return result, fmt.Errorf("%w: %v", ErrPersist, err)
		}
	}
	return result, nil
}
