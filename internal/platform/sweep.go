package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"

	"genfit/internal/evo"
	"genfit/internal/model"
)

// ExperimentSettings is one sweep block: a base configuration plus per-step
// increments. Block i of a Count-sized block runs with the base values offset
// by i times each step, with counts floored and probabilities clamped.
type ExperimentSettings struct {
	Count                    int     `yaml:"count"`
	Dataset                  string  `yaml:"dataset"`
	Seed                     int64   `yaml:"seed"`
	Selection                string  `yaml:"selection"`
	Crossover                string  `yaml:"crossover"`
	Mutation                 string  `yaml:"mutation"`
	IndividualCount          int     `yaml:"individual_count"`
	IndividualCountStep      int     `yaml:"individual_count_step"`
	Iterations               int     `yaml:"iterations"`
	IterationsStep           int     `yaml:"iterations_step"`
	CrossoverProbability     float64 `yaml:"crossover_probability"`
	CrossoverProbabilityStep float64 `yaml:"crossover_probability_step"`
	MutationProbability      float64 `yaml:"mutation_probability"`
	MutationProbabilityStep  float64 `yaml:"mutation_probability_step"`
}

type SweepConfig struct {
	Concurrency int                  `yaml:"concurrency"`
	Experiments []ExperimentSettings `yaml:"experiments"`
}

type SweepResult struct {
	Index  int
	Record model.Result
}

type SweepFailure struct {
	Index   int
	Dataset string
	Err     error
}

// SweepOutcome collects what a sweep produced: completed results in index
// order, per-configuration failures, and whether cancellation cut it short.
type SweepOutcome struct {
	ID        string
	Results   []SweepResult
	Failures  []SweepFailure
	Cancelled bool
}

func LoadSweepConfig(path string) (SweepConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SweepConfig{}, fmt.Errorf("open sweep config: %w", err)
	}
	defer f.Close()
	return ParseSweepConfig(f)
}

func ParseSweepConfig(in io.Reader) (SweepConfig, error) {
	var cfg SweepConfig
	decoder := yaml.NewDecoder(in)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return SweepConfig{}, fmt.Errorf("parse sweep config: %w", err)
	}
	if len(cfg.Experiments) == 0 {
		return SweepConfig{}, fmt.Errorf("%w: sweep has no experiment blocks", evo.ErrInvalidConfig)
	}
	for i := range cfg.Experiments {
		if cfg.Experiments[i].Count < 1 {
			cfg.Experiments[i].Count = 1
		}
	}
	return cfg, nil
}

// RunSweep executes every block of the sweep. Blocks are fully independent
// and run concurrently; runs inside a block are sequential. Cancellation is
// honored between runs, never mid-generation, and leaves already-completed
// results persisted. A failed configuration is recorded and the sweep moves
// on. onResult, if non-nil, observes each completed result as it lands;
// calls are serialized.
func (r *Runner) RunSweep(ctx context.Context, cfg SweepConfig, onResult func(SweepResult)) (SweepOutcome, error) {
	if len(cfg.Experiments) == 0 {
		return SweepOutcome{}, fmt.Errorf("%w: sweep has no experiment blocks", evo.ErrInvalidConfig)
	}

	outcome := SweepOutcome{ID: uuid.NewString()}
	var mu sync.Mutex

	workers := cfg.Concurrency
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers)
	baseIndex := 0
	for _, settings := range cfg.Experiments {
		base := baseIndex
		p.Go(func() {
			r.runBlock(ctx, base, settings, &mu, &outcome, onResult)
		})
		baseIndex += settings.Count
	}
	p.Wait()

	sort.Slice(outcome.Results, func(i, j int) bool { return outcome.Results[i].Index < outcome.Results[j].Index })
	sort.Slice(outcome.Failures, func(i, j int) bool { return outcome.Failures[i].Index < outcome.Failures[j].Index })
	return outcome, nil
}

func (r *Runner) runBlock(ctx context.Context, baseIndex int, settings ExperimentSettings, mu *sync.Mutex, outcome *SweepOutcome, onResult func(SweepResult)) {
	fail := func(index int, err error) {
		mu.Lock()
		outcome.Failures = append(outcome.Failures, SweepFailure{Index: index, Dataset: settings.Dataset, Err: err})
		mu.Unlock()
	}

	selector, err := evo.SelectorByName(settings.Selection)
	if err != nil {
		fail(baseIndex, err)
		return
	}
	crossover, err := evo.CrossoverByName(settings.Crossover)
	if err != nil {
		fail(baseIndex, err)
		return
	}
	mutator, err := evo.MutatorByName(settings.Mutation)
	if err != nil {
		fail(baseIndex, err)
		return
	}
	data, err := r.LoadDataset(settings.Dataset)
	if err != nil {
		fail(baseIndex, err)
		return
	}

	for i := 0; i < settings.Count; i++ {
		if ctx.Err() != nil {
			mu.Lock()
			outcome.Cancelled = true
			mu.Unlock()
			return
		}

		index := baseIndex + i
		runCfg := evo.Config{
			Data:                 data,
			Seed:                 settings.Seed,
			IndividualCount:      floorInt(settings.IndividualCount+i*settings.IndividualCountStep, 2),
			Iterations:           floorInt(settings.Iterations+i*settings.IterationsStep, 1),
			Selector:             selector,
			Crossover:            crossover,
			Mutator:              mutator,
			CrossoverProbability: clamp01(settings.CrossoverProbability + float64(i)*settings.CrossoverProbabilityStep),
			MutationProbability:  clamp01(settings.MutationProbability + float64(i)*settings.MutationProbabilityStep),
		}

		result, err := r.RunOne(ctx, runCfg)
		if err != nil {
			fail(index, err)
			continue
		}

		sweepResult := SweepResult{Index: index, Record: result.Record}
		mu.Lock()
		outcome.Results = append(outcome.Results, sweepResult)
		if onResult != nil {
			onResult(sweepResult)
		}
		mu.Unlock()
	}
}

func floorInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
