package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"marcpd/internal/bib"
	"marcpd/internal/faults"
)

// processBatch scores one batch through the worker's engine and writes
// the outcomes and stats files. On any error the partial result file is
// removed and the batch counts as zero progress; the input file is gone
// either way, Read deletes it up front.
func processBatch(ctx context.Context, wctx *WorkerContext, handle Handle, resultDir string, bruteForce bool) (Stats, string, error) {
	started := time.Now()

	records, err := handle.Read()
	if err != nil {
		return Stats{}, "", err
	}

	resultPath := filepath.Join(resultDir, fmt.Sprintf("batch-%05d-results.jsonl", handle.ID))
	f, err := os.Create(resultPath)
	if err != nil {
		return Stats{}, "", faults.Wrap(faults.ErrBatch, "batch", "results", resultPath, err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	fail := func(wrapped error) (Stats, string, error) {
		_ = f.Close()
		_ = os.Remove(resultPath)
		return Stats{}, "", wrapped
	}

	var stats Stats
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fail(faults.Wrap(faults.ErrTimeout, "batch", "score", fmt.Sprintf("batch %d", handle.ID), err))
			}
			return fail(faults.Wrap(faults.ErrBatch, "batch", "score", fmt.Sprintf("batch %d cancelled", handle.ID), err))
		}

		if record.Year == nil && !bruteForce {
			stats.SkippedNoYear++
			continue
		}

		switch record.CountryClass() {
		case bib.CountryUS:
			stats.USRecords++
		case bib.CountryNonUS:
			stats.NonUSRecords++
		default:
			stats.UnknownCountryRecords++
		}

		outcome := wctx.Engine.Match(record)
		stats.Processed++
		if outcome.Registration != nil {
			stats.RegistrationMatches++
			if outcome.Registration.IsLCCNMatch {
				stats.LCCNMatches++
			}
		}
		if outcome.Renewal != nil {
			stats.RenewalMatches++
			if outcome.Renewal.IsLCCNMatch {
				stats.LCCNMatches++
			}
		}
		if err := enc.Encode(outcome); err != nil {
			return fail(faults.Wrap(faults.ErrBatch, "batch", "results", resultPath, err))
		}
	}

	if err := w.Flush(); err != nil {
		return fail(faults.Wrap(faults.ErrBatch, "batch", "results", resultPath, err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(resultPath)
		return Stats{}, "", faults.Wrap(faults.ErrBatch, "batch", "results", resultPath, err)
	}

	stats.Seconds = time.Since(started).Seconds()
	if err := writeStatsFile(resultDir, handle.ID, stats); err != nil {
		return Stats{}, "", err
	}
	return stats, resultPath, nil
}

func writeStatsFile(resultDir string, batchID int, stats Stats) error {
	path := filepath.Join(resultDir, fmt.Sprintf("batch-%05d-stats.json", batchID))
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return faults.Wrap(faults.ErrBatch, "batch", "stats", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return faults.Wrap(faults.ErrBatch, "batch", "stats", path, err)
	}
	return nil
}

// ReadResultFile loads one batch's outcomes back off disk. Callers pull
// results lazily, typically only for export.
func ReadResultFile(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNotFound, "batch", "results", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var outcomes []json.RawMessage
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		outcomes = append(outcomes, json.RawMessage(append([]byte(nil), raw...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrBatch, "batch", "results", path, err)
	}
	return outcomes, nil
}
