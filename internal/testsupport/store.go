package testsupport

import (
	"testing"

	"marcpd/internal/candidatecache"
	"marcpd/internal/config"
)

// MustOpenStore opens a candidate cache store for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *candidatecache.Store {
	t.Helper()

	store, err := candidatecache.Open(cfg)
	if err != nil {
		t.Fatalf("candidatecache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
