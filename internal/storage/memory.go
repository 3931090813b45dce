package storage

import (
	"context"
	"sort"
	"sync"

	"genfit/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	results   map[string]model.Result
	histories map[string]model.FitnessHistory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = make(map[string]model.Result)
	s.histories = make(map[string]model.FitnessHistory)
	return nil
}

func (s *MemoryStore) SaveResult(_ context.Context, result model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[result.CalculateHash()] = result
	return nil
}

func (s *MemoryStore) GetResult(_ context.Context, hash string) (model.Result, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[hash]
	return result, ok, nil
}

func (s *MemoryStore) ListResults(_ context.Context) ([]model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashes := make([]string, 0, len(s.results))
	for hash := range s.results {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	results := make([]model.Result, 0, len(hashes))
	for _, hash := range hashes {
		results = append(results, s.results[hash])
	}
	return results, nil
}

func (s *MemoryStore) DeleteResult(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, hash)
	delete(s.histories, hash)
	return nil
}

func (s *MemoryStore) DeleteAllResults(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = make(map[string]model.Result)
	s.histories = make(map[string]model.FitnessHistory)
	return nil
}

func (s *MemoryStore) SaveFitnessHistory(_ context.Context, hash string, history model.FitnessHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[hash] = history
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, hash string) (model.FitnessHistory, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.histories[hash]
	return history, ok, nil
}
