package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"marcpd/internal/faults"
	"marcpd/internal/testsupport"
)

func TestProcessBatchTimeout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	engine := AssembleEngine(cfg, candidateFixture(), nil)
	handles, err := Partition(matchableInputs(2), filepath.Join(dir, "staging"), 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, _, err = processBatch(ctx, &WorkerContext{Engine: engine}, handles[0], dir, false)
	if !errors.Is(err, faults.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if faults.IsFatal(err) {
		t.Fatal("a batch timeout must not be fatal to the run")
	}

	// The partial result file is removed and the staging file consumed.
	resultPath := filepath.Join(dir, fmt.Sprintf("batch-%05d-results.jsonl", handles[0].ID))
	if _, statErr := os.Stat(resultPath); !os.IsNotExist(statErr) {
		t.Errorf("partial result file left behind: %v", statErr)
	}
	if _, statErr := os.Stat(handles[0].Path); !os.IsNotExist(statErr) {
		t.Errorf("staging file not consumed: %v", statErr)
	}

	handles[1].Discard()
}

func TestProcessBatchCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	engine := AssembleEngine(cfg, candidateFixture(), nil)
	handles, err := Partition(matchableInputs(1), filepath.Join(dir, "staging"), 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = processBatch(ctx, &WorkerContext{Engine: engine}, handles[0], dir, false)
	if !errors.Is(err, faults.ErrBatch) {
		t.Fatalf("expected batch error, got %v", err)
	}
	if errors.Is(err, faults.ErrTimeout) {
		t.Fatalf("cancellation must not report as timeout: %v", err)
	}
}
