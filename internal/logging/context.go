package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for run identifiers.
	FieldRunID = "run_id"
	// FieldBatchID is the standardized structured logging key for batch numbers.
	FieldBatchID = "batch_id"
	// FieldWorkerID is the standardized structured logging key for worker numbers.
	FieldWorkerID = "worker_id"
	// FieldDataset is the standardized structured logging key for candidate dataset names.
	FieldDataset = "dataset"
)

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	batchIDKey  contextKey = "batch_id"
	workerIDKey contextKey = "worker_id"
)

// WithRunID returns a context carrying the run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithBatchID returns a context carrying the batch number.
func WithBatchID(ctx context.Context, batchID int) context.Context {
	return context.WithValue(ctx, batchIDKey, batchID)
}

// BatchIDFromContext extracts the batch number, if present.
func BatchIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(batchIDKey).(int)
	return id, ok
}

// WithWorkerID returns a context carrying the worker number.
func WithWorkerID(ctx context.Context, workerID int) context.Context {
	return context.WithValue(ctx, workerIDKey, workerID)
}

// WorkerIDFromContext extracts the worker number, if present.
func WorkerIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(workerIDKey).(int)
	return id, ok
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if id, ok := BatchIDFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldBatchID, id))
	}
	if id, ok := WorkerIDFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldWorkerID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
