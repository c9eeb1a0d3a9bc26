package batch

import (
	"context"

	"marcpd/internal/candidatecache"
	"marcpd/internal/config"
	"marcpd/internal/faults"
	"marcpd/internal/match"
)

// WorkerContext is the per-worker scoring state: an engine plus the
// count of batches it has served, used for recycling. It is owned by
// exactly one worker goroutine at a time and never shared.
type WorkerContext struct {
	Engine *match.Engine

	served int
}

// Strategy produces worker contexts. The two implementations trade
// memory for construction cost: the shared strategy hands every worker
// the same read-only engine, the per-worker strategy builds a private
// engine from the candidate cache each time.
//
// Both must produce functionally identical contexts; which one runs is
// decided once, before the pool starts.
type Strategy interface {
	Name() string
	NewWorkerContext(ctx context.Context) (*WorkerContext, error)
}

type sharedStrategy struct {
	engine *match.Engine
}

// NewSharedStrategy wraps one pre-built engine for all workers. The
// engine's index is read-only after construction, so sharing is safe.
func NewSharedStrategy(engine *match.Engine) Strategy {
	return &sharedStrategy{engine: engine}
}

func (s *sharedStrategy) Name() string { return config.IndexStrategyShared }

func (s *sharedStrategy) NewWorkerContext(context.Context) (*WorkerContext, error) {
	return &WorkerContext{Engine: s.engine}, nil
}

type perWorkerStrategy struct {
	store *candidatecache.Store
	cfg   *config.Config
}

// NewPerWorkerStrategy builds a fresh engine from the candidate cache
// for every worker context. Costs one full index build per worker (and
// per recycle), but each worker's memory is independent.
func NewPerWorkerStrategy(store *candidatecache.Store, cfg *config.Config) Strategy {
	return &perWorkerStrategy{store: store, cfg: cfg}
}

func (s *perWorkerStrategy) Name() string { return config.IndexStrategyPerWorker }

func (s *perWorkerStrategy) NewWorkerContext(ctx context.Context) (*WorkerContext, error) {
	registration, err := s.store.LoadDataset(ctx, candidatecache.DatasetRegistration)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "worker", "init", "load registration dataset", err)
	}
	renewal, err := s.store.LoadDataset(ctx, candidatecache.DatasetRenewal)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "worker", "init", "load renewal dataset", err)
	}
	if len(registration) == 0 && len(renewal) == 0 {
		return nil, faults.Wrap(faults.ErrFatal, "worker", "init", "candidate cache is empty", nil)
	}
	return &WorkerContext{Engine: AssembleEngine(s.cfg, registration, renewal)}, nil
}
