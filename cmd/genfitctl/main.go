package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"genfit/internal/dataset"
	"genfit/internal/platform"
	"genfit/internal/storage"
	"genfit/pkg/genfit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "sweep":
		return runSweep(ctx, args[1:])
	case "results":
		return runResults(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "delete":
		return runDelete(ctx, args[1:])
	case "operators":
		return runOperators(args[1:])
	case "dataset":
		return runDataset(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

type storeFlags struct {
	kind *string
	path *string
	data *string
}

func addStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		kind: fs.String("store", storage.DefaultStoreKind(), "store backend: fs|memory|sqlite"),
		path: fs.String("store-path", "results", "results directory (fs) or database path (sqlite)"),
		data: fs.String("datasets-dir", "datasets", "directory resolved against relative dataset names"),
	}
}

func (f storeFlags) client() (*genfit.Client, error) {
	return genfit.New(genfit.Options{
		StoreKind:  *f.kind,
		StorePath:  *f.path,
		DatasetDir: *f.data,
	})
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	store := addStoreFlags(fs)
	datasetName := fs.String("dataset", "", "dataset file to fit")
	seed := fs.Int64("seed", 1, "random seed")
	individuals := fs.Int("individuals", 20, "individual count")
	iterations := fs.Int("iterations", 50, "iteration count")
	selection := fs.String("selection", "Roulette", "selection operator")
	crossover := fs.String("crossover", "Single point", "crossover operator")
	mutation := fs.String("mutation", "Uniform", "mutation operator")
	crossoverProb := fs.Float64("crossover-prob", 0.8, "crossover probability")
	mutationProb := fs.Float64("mutation-prob", 0.1, "mutation probability")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := store.client()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Run(ctx, genfit.RunRequest{
		Dataset:              *datasetName,
		Seed:                 *seed,
		IndividualCount:      *individuals,
		Iterations:           *iterations,
		Selection:            *selection,
		Crossover:            *crossover,
		Mutation:             *mutation,
		CrossoverProbability: *crossoverProb,
		MutationProbability:  *mutationProb,
	})
	if err != nil {
		return err
	}

	fmt.Printf("hash=%s\n", summary.Hash)
	fmt.Printf("best_fitness=%g\n", summary.Record.BestFitness)
	fmt.Printf("best_individual=%s\n", summary.Record.BestIndividual)
	return nil
}

func runSweep(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	store := addStoreFlags(fs)
	configPath := fs.String("config", "", "sweep configuration file (yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return usageError("sweep requires -config")
	}

	cfg, err := platform.LoadSweepConfig(*configPath)
	if err != nil {
		return err
	}

	client, err := store.client()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	outcome, err := client.Sweep(ctx, cfg, func(r platform.SweepResult) {
		fmt.Printf("experiment %d: hash=%s best_fitness=%g\n", r.Index, r.Record.CalculateHash(), r.Record.BestFitness)
	})
	if err != nil {
		return err
	}

	for _, failure := range outcome.Failures {
		fmt.Fprintf(os.Stderr, "experiment %d failed: %v\n", failure.Index, failure.Err)
	}
	fmt.Printf("sweep %s: %d completed, %d failed", outcome.ID, len(outcome.Results), len(outcome.Failures))
	if outcome.Cancelled {
		fmt.Printf(", cancelled")
	}
	fmt.Println()
	return nil
}

func runResults(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("results", flag.ContinueOnError)
	store := addStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := store.client()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	results, err := client.Results(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	for _, result := range results {
		fmt.Printf("%s  dataset=%s seed=%d individuals=%d iterations=%d selection=%q crossover=%q mutation=%q best=%g\n",
			shortHash(result.CalculateHash()),
			result.Dataset,
			result.Seed,
			result.IndividualCount,
			result.Iterations,
			result.Selection,
			result.Crossover,
			result.Mutation,
			result.BestFitness,
		)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	store := addStoreFlags(fs)
	hash := fs.String("hash", "", "result hash")
	withHistory := fs.Bool("history", false, "include the fitness history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" {
		return usageError("show requires -hash")
	}

	client, err := store.client()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	result, err := client.Result(ctx, *hash)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	if *withHistory {
		history, err := client.FitnessHistory(ctx, *hash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println("no fitness history stored")
				return nil
			}
			return err
		}
		return encoder.Encode(history)
	}
	return nil
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	store := addStoreFlags(fs)
	hash := fs.String("hash", "", "result hash to delete")
	all := fs.Bool("all", false, "delete every stored result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" && !*all {
		return usageError("delete requires -hash or -all")
	}

	client, err := store.client()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	if *all {
		if err := client.DeleteAll(ctx); err != nil {
			return err
		}
		fmt.Println("deleted all results")
		return nil
	}
	if err := client.Delete(ctx, *hash); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *hash)
	return nil
}

func runOperators(args []string) error {
	fs := flag.NewFlagSet("operators", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog := genfit.Operators()
	fmt.Println("selection:")
	for _, name := range catalog.Selection {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("crossover:")
	for _, name := range catalog.Crossover {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("mutation:")
	for _, name := range catalog.Mutation {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func runDataset(args []string) error {
	fs := flag.NewFlagSet("dataset", flag.ContinueOnError)
	path := fs.String("path", "", "dataset file to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return usageError("dataset requires -path")
	}

	m, err := dataset.Load(*path)
	if err != nil {
		return err
	}
	fmt.Printf("dataset=%s rows=%d features=%d\n", m.Name(), m.Rows(), m.Features())
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func usageError(message string) error {
	return fmt.Errorf("%s\nusage: genfitctl <run|sweep|results|show|delete|operators|dataset> [flags]", message)
}
