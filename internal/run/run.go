// Package run owns one matching run end to end: lock acquisition, run
// directory layout, candidate loading, strategy selection, and the
// batch pipeline. The CLI stays declarative; everything that actually
// happens during `marcpd match` happens here.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"marcpd/internal/batch"
	"marcpd/internal/candidatecache"
	"marcpd/internal/config"
	"marcpd/internal/faults"
	"marcpd/internal/logging"
)

// Summary is what a completed run reports back to the CLI.
type Summary struct {
	RunID         string
	ResultDir     string
	Batches       int
	FailedBatches int
	Totals        batch.Stats
	Elapsed       time.Duration
	Strategy      string
}

// Runner executes matching runs against the candidate cache. One run at
// a time per work directory; a file lock keeps concurrent invocations
// out.
type Runner struct {
	cfg    *config.Config
	store  *candidatecache.Store
	logger *slog.Logger
}

// NewRunner wires a runner. The store must stay open for the runner's
// lifetime.
func NewRunner(cfg *config.Config, store *candidatecache.Store, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, store: store, logger: logging.NewComponentLogger(logger, "run")}
}

// Match loads the input file, partitions it, and drives the worker pool
// over both candidate datasets. The run directory (staging plus
// results) lives under the work dir, keyed by a fresh run id; result
// files persist after the run for export.
func (r *Runner) Match(ctx context.Context, inputPath string) (*Summary, error) {
	lock := flock.New(filepath.Join(r.cfg.Paths.WorkDir, "marcpd.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "run", "lock", "acquire run lock", err)
	}
	if !ok {
		return nil, errors.New("another marcpd run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	strategy, err := r.buildStrategy(ctx)
	if err != nil {
		return nil, err
	}

	inputs, err := batch.ReadInputFile(inputPath)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, faults.Wrap(faults.ErrValidation, "run", "load", fmt.Sprintf("%s contains no records", inputPath), nil)
	}
	logger.Info("input loaded",
		logging.Args(logging.Int("records", len(inputs)), logging.String("path", inputPath))...)

	runDir := filepath.Join(r.cfg.Paths.WorkDir, "runs", runID)
	handles, err := batch.Partition(inputs, filepath.Join(runDir, "staging"), r.cfg.Processing.BatchSize)
	if err != nil {
		return nil, err
	}
	inputs = nil // spooled to disk; let the memory go before the pool starts

	resultDir := filepath.Join(runDir, "results")
	orch := batch.NewOrchestrator(r.cfg, strategy, r.logger, resultDir)
	totals, results, err := orch.Run(ctx, handles)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	failed := 0
	for _, result := range results {
		if result.Failure != "" {
			failed++
		}
	}

	return &Summary{
		RunID:         runID,
		ResultDir:     resultDir,
		Batches:       len(results),
		FailedBatches: failed,
		Totals:        totals,
		Elapsed:       time.Since(started),
		Strategy:      strategy.Name(),
	}, err
}

// buildStrategy selects worker initialization per config. The shared
// strategy loads both datasets once here, before any worker exists;
// per-worker defers loading to each worker context build.
func (r *Runner) buildStrategy(ctx context.Context) (batch.Strategy, error) {
	if r.cfg.Processing.IndexStrategy == config.IndexStrategyPerWorker {
		return batch.NewPerWorkerStrategy(r.store, r.cfg), nil
	}

	registration, err := r.store.LoadDataset(ctx, candidatecache.DatasetRegistration)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "run", "init", "load registration dataset", err)
	}
	renewal, err := r.store.LoadDataset(ctx, candidatecache.DatasetRenewal)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "run", "init", "load renewal dataset", err)
	}
	if len(registration) == 0 && len(renewal) == 0 {
		return nil, faults.Wrap(faults.ErrFatal, "run", "init", "candidate cache is empty; run `marcpd import` first", nil)
	}
	r.logger.Info("candidates loaded",
		logging.Args(
			logging.Int("registration", len(registration)),
			logging.Int("renewal", len(renewal)),
		)...)

	return batch.NewSharedStrategy(batch.AssembleEngine(r.cfg, registration, renewal)), nil
}
