// Package genfit is the public client API: configure a store once, then run
// single experiments or whole sweeps and inspect persisted results.
package genfit

import (
	"context"
	"fmt"

	"genfit/internal/evo"
	"genfit/internal/model"
	"genfit/internal/platform"
	"genfit/internal/storage"
)

const defaultResultsDir = "results"

type Options struct {
	// StoreKind selects the results backend: fs (default), memory, or
	// sqlite (requires the sqlite build tag).
	StoreKind string
	// StorePath is the results directory for fs, or the database path for
	// sqlite.
	StorePath string
	// DatasetDir is prepended to relative dataset names.
	DatasetDir string
}

type Client struct {
	store     storage.Store
	runner    *platform.Runner
	validator *requestValidator
}

// RunRequest describes one experiment. Operator fields take display names,
// e.g. "Roulette", "Single point", "Non-uniform".
type RunRequest struct {
	Dataset              string  `validate:"required"`
	Seed                 int64   `validate:"-"`
	IndividualCount      int     `validate:"gte=2"`
	Iterations           int     `validate:"gte=1"`
	Selection            string  `validate:"required"`
	Crossover            string  `validate:"required"`
	Mutation             string  `validate:"required"`
	CrossoverProbability float64 `validate:"gte=0,lte=1"`
	MutationProbability  float64 `validate:"gte=0,lte=1"`
}

type RunSummary struct {
	Hash             string
	Record           model.Result
	BestFitnesses    []float64
	AverageFitnesses []float64
}

// OperatorCatalog lists the display names of every operator per family.
type OperatorCatalog struct {
	Selection []string
	Crossover []string
	Mutation  []string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	storePath := opts.StorePath
	if storePath == "" {
		storePath = defaultResultsDir
	}

	store, err := storage.NewStore(storeKind, storePath)
	if err != nil {
		return nil, err
	}
	v, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	return &Client{
		store:     store,
		runner:    &platform.Runner{Store: store, DatasetDir: opts.DatasetDir},
		validator: v,
	}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Run validates the request, executes one experiment, persists the result,
// and returns its summary.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := c.validator.validateRun(req); err != nil {
		return RunSummary{}, err
	}

	selector, err := evo.SelectorByName(req.Selection)
	if err != nil {
		return RunSummary{}, err
	}
	crossover, err := evo.CrossoverByName(req.Crossover)
	if err != nil {
		return RunSummary{}, err
	}
	mutator, err := evo.MutatorByName(req.Mutation)
	if err != nil {
		return RunSummary{}, err
	}
	data, err := c.runner.LoadDataset(req.Dataset)
	if err != nil {
		return RunSummary{}, err
	}

	result, err := c.runner.RunOne(ctx, evo.Config{
		Data:                 data,
		Seed:                 req.Seed,
		IndividualCount:      req.IndividualCount,
		Iterations:           req.Iterations,
		Selector:             selector,
		Crossover:            crossover,
		Mutator:              mutator,
		CrossoverProbability: req.CrossoverProbability,
		MutationProbability:  req.MutationProbability,
	})
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		Hash:             result.Record.CalculateHash(),
		Record:           result.Record,
		BestFitnesses:    result.History.Best,
		AverageFitnesses: result.History.Average,
	}, nil
}

// Sweep runs a batch of experiment blocks. onResult observes completed runs
// as they land; see platform.Runner.RunSweep for cancellation semantics.
func (c *Client) Sweep(ctx context.Context, cfg platform.SweepConfig, onResult func(platform.SweepResult)) (platform.SweepOutcome, error) {
	return c.runner.RunSweep(ctx, cfg, onResult)
}

func (c *Client) Results(ctx context.Context) ([]model.Result, error) {
	return c.store.ListResults(ctx)
}

func (c *Client) Result(ctx context.Context, hash string) (model.Result, error) {
	result, ok, err := c.store.GetResult(ctx, hash)
	if err != nil {
		return model.Result{}, err
	}
	if !ok {
		return model.Result{}, fmt.Errorf("%w: %s", storage.ErrNotFound, hash)
	}
	return result, nil
}

func (c *Client) FitnessHistory(ctx context.Context, hash string) (model.FitnessHistory, error) {
	history, ok, err := c.store.GetFitnessHistory(ctx, hash)
	if err != nil {
		return model.FitnessHistory{}, err
	}
	if !ok {
		return model.FitnessHistory{}, fmt.Errorf("%w: %s", storage.ErrNotFound, hash)
	}
	return history, nil
}

func (c *Client) Delete(ctx context.Context, hash string) error {
	return c.store.DeleteResult(ctx, hash)
}

func (c *Client) DeleteAll(ctx context.Context) error {
	return c.store.DeleteAllResults(ctx)
}

func Operators() OperatorCatalog {
	return OperatorCatalog{
		Selection: evo.SelectorNames(),
		Crossover: evo.CrossoverNames(),
		Mutation:  evo.MutatorNames(),
	}
}
