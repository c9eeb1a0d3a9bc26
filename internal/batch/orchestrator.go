package batch

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"marcpd/internal/config"
	"marcpd/internal/faults"
	"marcpd/internal/logging"
)

// Orchestrator drives a fixed worker pool over spooled batches. Results
// are collected in completion order; only the summed stats depend on
// them, and summing is order-independent.
type Orchestrator struct {
	cfg       *config.Config
	strategy  Strategy
	logger    *slog.Logger
	resultDir string
}

// NewOrchestrator wires the pool. resultDir receives per-batch result
// and stats files.
func NewOrchestrator(cfg *config.Config, strategy Strategy, logger *slog.Logger, resultDir string) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		strategy:  strategy,
		logger:    logging.NewComponentLogger(logger, "batch"),
		resultDir: resultDir,
	}
}

// Run processes every batch and returns the summed stats plus per-batch
// results. Worker initialization failure is fatal and returns an error;
// per-batch failures are recorded as zero-progress results and the run
// keeps going. Cancellation stops dispatching, discards unconsumed
// batch files, and returns what completed; result files are kept.
func (o *Orchestrator) Run(ctx context.Context, handles []Handle) (Stats, []Result, error) {
	if len(handles) == 0 {
		return Stats{}, nil, nil
	}
	if err := os.MkdirAll(o.resultDir, 0o755); err != nil {
		return Stats{}, nil, faults.Wrap(faults.ErrFatal, "batch", "run", "create result dir", err)
	}

	workers := o.workerCount(len(handles))
	recycleAfter := o.recycleCadence(len(handles), workers)

	o.logger.Info("starting run",
		logging.Args(
			logging.Int("batches", len(handles)),
			logging.Int("workers", workers),
			logging.String("strategy", o.strategy.Name()),
			logging.Int("recycle_after", recycleAfter),
		)...)

	// Contexts are created before any batch is dispatched so an init
	// failure aborts cleanly instead of mid-run.
	contexts := make([]*WorkerContext, workers)
	for i := range contexts {
		wctx, err := o.strategy.NewWorkerContext(ctx)
		if err != nil {
			return Stats{}, nil, err
		}
		contexts[i] = wctx
	}

	jobs := make(chan Handle)
	results := make(chan Result)

	go func() {
		defer close(jobs)
		for _, handle := range handles {
			select {
			case jobs <- handle:
			case <-ctx.Done():
				handle.Discard()
			}
		}
	}()

	var wg sync.WaitGroup
	for i := range contexts {
		wg.Add(1)
		go func(workerID int, wctx *WorkerContext) {
			defer wg.Done()
			o.workerLoop(ctx, workerID, wctx, jobs, results, recycleAfter)
		}(i, contexts[i])
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var totals Stats
	var collected []Result
	for result := range results {
		totals.Merge(result.Stats)
		collected = append(collected, result)
		if result.Failure != "" {
			o.logger.Warn("batch failed",
				logging.Args(
					logging.Int(logging.FieldBatchID, result.BatchID),
					logging.String("failure", result.Failure),
				)...)
		}
	}

	o.logger.Info("run complete",
		logging.Args(
			logging.Int("batches", len(collected)),
			logging.Int("processed", totals.Processed),
			logging.Int("registration_matches", totals.RegistrationMatches),
			logging.Int("renewal_matches", totals.RenewalMatches),
			logging.Int("skipped_no_year", totals.SkippedNoYear),
		)...)
	return totals, collected, ctx.Err()
}

func (o *Orchestrator) workerLoop(ctx context.Context, workerID int, wctx *WorkerContext, jobs <-chan Handle, results chan<- Result, recycleAfter int) {
	logger := logging.WithContext(logging.WithWorkerID(ctx, workerID), o.logger)
	bruteForce := o.cfg.Matching.BruteForceMissingYear
	timeout := time.Duration(o.cfg.Processing.BatchTimeout) * time.Second

	for handle := range jobs {
		batchCtx := ctx
		var cancel context.CancelFunc
		if timeout > 0 {
			batchCtx, cancel = context.WithTimeout(ctx, timeout)
		}

		started := time.Now()
		stats, resultPath, err := processBatch(batchCtx, wctx, handle, o.resultDir, bruteForce)
		if cancel != nil {
			cancel()
		}

		result := Result{BatchID: handle.ID}
		if err != nil {
			result.Failure = err.Error()
			result.Stats.Errors = 1
		} else {
			result.Stats = stats
			result.ResultPath = resultPath
			logger.Info("batch complete",
				logging.Args(
					logging.Int(logging.FieldBatchID, handle.ID),
					logging.Int("processed", stats.Processed),
					logging.Duration("elapsed", time.Since(started)),
				)...)
		}
		results <- result

		wctx.served++
		if recycleAfter > 0 && wctx.served >= recycleAfter {
			fresh, err := o.strategy.NewWorkerContext(ctx)
			if err != nil {
				// Recycling is an optimization; the old context still
				// works, so keep serving with it.
				logger.Warn("worker recycle failed", logging.Args(logging.Error(err))...)
				wctx.served = 0
				continue
			}
			*wctx = *fresh
		}
	}
}

func (o *Orchestrator) workerCount(batches int) int {
	workers := o.cfg.Processing.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > batches {
		workers = batches
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// recycleCadence picks how many batches a worker context serves before
// being rebuilt. Config -1 disables recycling, a positive value is used
// as-is, and 0 picks an automatic cadence of roughly three recycles per
// worker over the run, skipped entirely for small runs where a rebuild
// costs more than it frees.
func (o *Orchestrator) recycleCadence(batches, workers int) int {
	configured := o.cfg.Processing.RecycleAfterBatches
	if configured < 0 {
		return 0
	}
	if configured > 0 {
		return configured
	}
	if batches < workers*4 {
		return 0
	}
	return batches/(workers*3) + 1
}
