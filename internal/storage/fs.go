package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"genfit/internal/model"
)

const (
	resultSuffix  = ".result.json"
	historySuffix = ".history.json"
)

// FSStore keeps one file per result under a directory, named by content
// hash. Distinct hashes never collide, so concurrent writers need no
// locking; identical hashes overwrite in place.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) Init(_ context.Context) error {
	if s.dir == "" {
		return errors.New("results directory is required")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}
	return nil
}

func (s *FSStore) SaveResult(_ context.Context, result model.Result) error {
	payload, err := EncodeResult(result)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, result.CalculateHash()+resultSuffix)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (s *FSStore) GetResult(_ context.Context, hash string) (model.Result, bool, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, hash+resultSuffix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Result{}, false, nil
		}
		return model.Result{}, false, fmt.Errorf("read result %s: %w", hash, err)
	}
	result, err := DecodeResult(payload)
	if err != nil {
		return model.Result{}, false, fmt.Errorf("decode result %s: %w", hash, err)
	}
	return result, true, nil
}

func (s *FSStore) ListResults(ctx context.Context) ([]model.Result, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list results: %w", err)
	}

	hashes := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, resultSuffix) {
			continue
		}
		hashes = append(hashes, strings.TrimSuffix(name, resultSuffix))
	}
	sort.Strings(hashes)

	results := make([]model.Result, 0, len(hashes))
	for _, hash := range hashes {
		result, ok, err := s.GetResult(ctx, hash)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, result)
		}
	}
	return results, nil
}

func (s *FSStore) DeleteResult(_ context.Context, hash string) error {
	if err := removeIfExists(filepath.Join(s.dir, hash+resultSuffix)); err != nil {
		return fmt.Errorf("delete result %s: %w", hash, err)
	}
	if err := removeIfExists(filepath.Join(s.dir, hash+historySuffix)); err != nil {
		return fmt.Errorf("delete history %s: %w", hash, err)
	}
	return nil
}

func (s *FSStore) DeleteAllResults(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("list results: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(name, resultSuffix) && !strings.HasSuffix(name, historySuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	return nil
}

func (s *FSStore) SaveFitnessHistory(_ context.Context, hash string, history model.FitnessHistory) error {
	payload, err := EncodeFitnessHistory(history)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, hash+historySuffix)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func (s *FSStore) GetFitnessHistory(_ context.Context, hash string) (model.FitnessHistory, bool, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, hash+historySuffix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.FitnessHistory{}, false, nil
		}
		return model.FitnessHistory{}, false, fmt.Errorf("read history %s: %w", hash, err)
	}
	history, err := DecodeFitnessHistory(payload)
	if err != nil {
		return model.FitnessHistory{}, false, fmt.Errorf("decode history %s: %w", hash, err)
	}
	return history, true, nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
