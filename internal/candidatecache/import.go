package candidatecache

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"marcpd/internal/bib"
)

// Oversized lines happen: renewal full_text entries run long.
const maxLineBytes = 4 << 20

// ReadCandidateFile parses one JSON-lines dump into candidate records.
// Blank lines are skipped; a malformed line is an error with its line
// number.
func ReadCandidateFile(path string) ([]*bib.CandidateRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidate file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := readCandidates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func readCandidates(r io.Reader) ([]*bib.CandidateRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []*bib.CandidateRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record bib.CandidateRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return records, nil
}

// Import reads a JSON-lines dump and replaces one dataset in the cache.
// Returns the number of records imported.
func (s *Store) Import(ctx context.Context, dataset Dataset, path string) (int, error) {
	records, err := ReadCandidateFile(path)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceDataset(ctx, dataset, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
