package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"marcpd/internal/bib"
	"marcpd/internal/faults"
)

// Oversized spool lines happen when records carry long notes.
const maxLineBytes = 4 << 20

// Handle names one spooled batch input file. The file is consumed
// exactly once: Read deletes it whether or not decoding succeeds, so
// staging disk is released as early as possible.
type Handle struct {
	ID    int
	Path  string
	Count int
}

// Partition spools the input records into batch files under dir and
// returns one handle per file. Records are not retained in memory; the
// caller should drop its slice after partitioning.
func Partition(records []*bib.InputRecord, dir string, batchSize int) ([]Handle, error) {
	if batchSize <= 0 {
		return nil, faults.Wrap(faults.ErrValidation, "batch", "partition", fmt.Sprintf("batch size %d", batchSize), nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrFatal, "batch", "partition", "create staging dir", err)
	}

	var handles []Handle
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		id := len(handles) + 1
		path := filepath.Join(dir, fmt.Sprintf("batch-%05d.jsonl", id))
		if err := writeBatchFile(path, records[start:end]); err != nil {
			return nil, faults.Wrap(faults.ErrFatal, "batch", "partition", path, err)
		}
		handles = append(handles, Handle{ID: id, Path: path, Count: end - start})
	}
	return handles, nil
}

func writeBatchFile(path string, records []*bib.InputRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read loads the handle's records and deletes the file. The delete
// happens on the error path too: a batch file that cannot be decoded is
// not worth keeping.
func (h Handle) Read() ([]*bib.InputRecord, error) {
	defer func() { _ = os.Remove(h.Path) }()

	f, err := os.Open(h.Path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrBatch, "batch", "read", h.Path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []*bib.InputRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record bib.InputRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, faults.Wrap(faults.ErrBatch, "batch", "read", fmt.Sprintf("%s line %d", h.Path, line), err)
		}
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrBatch, "batch", "read", h.Path, err)
	}
	return records, nil
}

// Discard removes the handle's file without reading it. Used when a run
// is cancelled before the batch was dispatched.
func (h Handle) Discard() {
	_ = os.Remove(h.Path)
}

// ReadInputFile parses a whole JSON-lines input file into records for
// partitioning. LCCNs are normalized on the way in so identifier
// matching can use plain equality.
func ReadInputFile(path string) ([]*bib.InputRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNotFound, "batch", "load", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []*bib.InputRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record bib.InputRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, faults.Wrap(faults.ErrValidation, "batch", "load", fmt.Sprintf("%s line %d", path, line), err)
		}
		record.LCCN = bib.NormalizeLCCN(record.LCCN)
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrBatch, "batch", "load", path, err)
	}
	return records, nil
}
