package evo

import "fmt"

// The operator families are closed sets. Display names double as lookup keys
// and as identity fields on persisted results; they never drive behavioral
// branching.

func Selectors() []Selector {
	return []Selector{
		RouletteSelector{},
		TournamentSelector{},
		ExclusiveTournamentSelector{},
	}
}

func Crossovers() []Crossover {
	return []Crossover{
		SinglePointCrossover{},
		TwoPointCrossover{},
	}
}

func Mutators() []Mutator {
	return []Mutator{
		UniformMutator{},
		BlendMutator{},
	}
}

func SelectorByName(name string) (Selector, error) {
	for _, selector := range Selectors() {
		if selector.Name() == name {
			return selector, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown selection operator %q", ErrInvalidConfig, name)
}

func CrossoverByName(name string) (Crossover, error) {
	for _, crossover := range Crossovers() {
		if crossover.Name() == name {
			return crossover, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown crossover operator %q", ErrInvalidConfig, name)
}

func MutatorByName(name string) (Mutator, error) {
	for _, mutator := range Mutators() {
		if mutator.Name() == name {
			return mutator, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown mutation operator %q", ErrInvalidConfig, name)
}

func SelectorNames() []string {
	names := make([]string, 0, len(Selectors()))
	for _, s := range Selectors() {
		names = append(names, s.Name())
	}
	return names
}

func CrossoverNames() []string {
	names := make([]string, 0, len(Crossovers()))
	for _, c := range Crossovers() {
		names = append(names, c.Name())
	}
	return names
}

func MutatorNames() []string {
	names := make([]string, 0, len(Mutators()))
	for _, m := range Mutators() {
		names = append(names, m.Name())
	}
	return names
}
