package testsupport

import (
	"testing"

	"subdeck/internal/archive"
	"subdeck/internal/config"
)

// MustOpenArchive opens the deck archive for tests and registers cleanup.
func MustOpenArchive(t testing.TB, cfg *config.Config) *archive.Store {
	t.Helper()

	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
