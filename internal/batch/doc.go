// Package batch implements the parallel matching pipeline: inputs are
// partitioned into disk-spooled batches, a fixed pool of workers scores
// them through a match.Engine, per-batch results and stats land on disk,
// and the orchestrator sums stats as batches complete in whatever order
// they finish.
//
// Failure is scoped to the batch. A timeout or scoring error records the
// batch as zero progress and the run continues; only worker
// initialization failure aborts the run.
package batch
