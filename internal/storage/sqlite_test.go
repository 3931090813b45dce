//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreContract(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "genfit.db"))
	t.Cleanup(func() {
		_ = store.Close()
	})
	storeUnderTest(t, store)
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "genfit.db"))
	if _, _, err := store.GetResult(context.Background(), "abc"); err == nil {
		t.Fatal("expected an error before Init")
	}
}
