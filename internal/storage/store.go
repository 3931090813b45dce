package storage

import (
	"context"
	"errors"

	"genfit/internal/model"
)

var ErrNotFound = errors.New("result not found")

// Store persists experiment results keyed by their content hash. Saving an
// existing hash overwrites, so identical runs deduplicate naturally. Fitness
// histories ride alongside under the same key.
type Store interface {
	Init(ctx context.Context) error
	SaveResult(ctx context.Context, result model.Result) error
	GetResult(ctx context.Context, hash string) (model.Result, bool, error)
	ListResults(ctx context.Context) ([]model.Result, error)
	DeleteResult(ctx context.Context, hash string) error
	DeleteAllResults(ctx context.Context) error
	SaveFitnessHistory(ctx context.Context, hash string, history model.FitnessHistory) error
	GetFitnessHistory(ctx context.Context, hash string) (model.FitnessHistory, bool, error)
}
