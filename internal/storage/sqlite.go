//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"genfit/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveResult(ctx context.Context, result model.Result) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeResult(result)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO results (hash, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, result.CalculateHash(), result.SchemaVersion, result.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetResult(ctx context.Context, hash string) (model.Result, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Result{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM results WHERE hash = ?`, hash).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Result{}, false, nil
		}
		return model.Result{}, false, err
	}

	result, err := DecodeResult(payload)
	if err != nil {
		return model.Result{}, false, fmt.Errorf("decode result %s: %w", hash, err)
	}
	return result, true, nil
}

func (s *SQLiteStore) ListResults(ctx context.Context) ([]model.Result, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT hash, payload FROM results ORDER BY hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		var hash string
		var payload []byte
		if err := rows.Scan(&hash, &payload); err != nil {
			return nil, err
		}
		result, err := DecodeResult(payload)
		if err != nil {
			return nil, fmt.Errorf("decode result %s: %w", hash, err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) DeleteResult(ctx context.Context, hash string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM results WHERE hash = ?`, hash); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM fitness_histories WHERE hash = ?`, hash)
	return err
}

func (s *SQLiteStore) DeleteAllResults(ctx context.Context) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM fitness_histories`)
	return err
}

func (s *SQLiteStore) SaveFitnessHistory(ctx context.Context, hash string, history model.FitnessHistory) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeFitnessHistory(history)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO fitness_histories (hash, payload)
		VALUES (?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			payload = excluded.payload
	`, hash, payload)
	return err
}

func (s *SQLiteStore) GetFitnessHistory(ctx context.Context, hash string) (model.FitnessHistory, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.FitnessHistory{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM fitness_histories WHERE hash = ?`, hash).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FitnessHistory{}, false, nil
		}
		return model.FitnessHistory{}, false, err
	}

	history, err := DecodeFitnessHistory(payload)
	if err != nil {
		return model.FitnessHistory{}, false, fmt.Errorf("decode history %s: %w", hash, err)
	}
	return history, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			hash TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fitness_histories (
			hash TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
