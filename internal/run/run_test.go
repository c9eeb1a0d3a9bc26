package run_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"marcpd/internal/bib"
	"marcpd/internal/candidatecache"
	"marcpd/internal/logging"
	"marcpd/internal/run"
	"marcpd/internal/testsupport"
)

func seedCache(t *testing.T, store *candidatecache.Store) {
	t.Helper()
	year := 1925
	err := store.ReplaceDataset(context.Background(), candidatecache.DatasetRegistration, []*bib.CandidateRecord{
		{SourceID: "R1", Title: "The Great Gatsby", Author: "Fitzgerald, F. Scott", Publisher: "Scribner", Year: &year},
	})
	if err != nil {
		t.Fatalf("seed cache: %v", err)
	}
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	year := 1925
	path := filepath.Join(dir, "input.jsonl")
	testsupport.WriteJSONLines(t, path, []*bib.InputRecord{
		{SourceID: "in1", Title: "The Great Gatsby", Author: "Fitzgerald, F. Scott", Year: &year},
		{SourceID: "in2", Title: "Completely Unrelated Treatise", Year: &year},
	})
	return path
}

func TestMatchRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedCache(t, store)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	runner := run.NewRunner(cfg, store, logging.NewNop())
	summary, err := runner.Match(context.Background(), writeInput(t, t.TempDir()))
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	if summary.RunID == "" {
		t.Error("missing run id")
	}
	if summary.Totals.Processed != 2 {
		t.Errorf("processed = %d, want 2", summary.Totals.Processed)
	}
	if summary.Totals.RegistrationMatches != 1 {
		t.Errorf("registration matches = %d, want 1", summary.Totals.RegistrationMatches)
	}
	if summary.FailedBatches != 0 {
		t.Errorf("failed batches = %d", summary.FailedBatches)
	}
	entries, err := os.ReadDir(summary.ResultDir)
	if err != nil || len(entries) == 0 {
		t.Errorf("result dir empty: %v", err)
	}
}

func TestMatchRefusesConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedCache(t, store)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	held := flock.New(filepath.Join(cfg.Paths.WorkDir, "marcpd.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-acquire lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	runner := run.NewRunner(cfg, store, logging.NewNop())
	if _, err := runner.Match(context.Background(), writeInput(t, t.TempDir())); err == nil {
		t.Fatal("expected lock contention error")
	}
}

func TestMatchEmptyCacheIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	runner := run.NewRunner(cfg, store, logging.NewNop())
	if _, err := runner.Match(context.Background(), writeInput(t, t.TempDir())); err == nil {
		t.Fatal("expected error for empty candidate cache")
	}
}
