package candidatecache_test

import (
	"context"
	"path/filepath"
	"testing"

	"marcpd/internal/bib"
	"marcpd/internal/candidatecache"
	"marcpd/internal/testsupport"
)

func TestReplaceAndLoadDataset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	records := []*bib.CandidateRecord{
		{SourceID: "A100", Title: "First Title", Author: "Author, One", Year: testsupport.IntPtr(1930), LCCN: "30-12345"},
		{SourceID: "A101", Title: "Second Title", PubDate: "1931-02-01"},
	}
	if err := store.ReplaceDataset(ctx, candidatecache.DatasetRegistration, records); err != nil {
		t.Fatalf("ReplaceDataset failed: %v", err)
	}

	loaded, err := store.LoadDataset(ctx, candidatecache.DatasetRegistration)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d records, want 2", len(loaded))
	}
	if loaded[0].SourceID != "A100" || loaded[1].SourceID != "A101" {
		t.Fatalf("unexpected order: %s, %s", loaded[0].SourceID, loaded[1].SourceID)
	}
	if loaded[0].Year == nil || *loaded[0].Year != 1930 {
		t.Errorf("year not round-tripped: %v", loaded[0].Year)
	}
	if loaded[1].Year != nil {
		t.Errorf("missing year came back as %v", *loaded[1].Year)
	}
	// LCCNs are normalized on import.
	if loaded[0].LCCN != "30012345" {
		t.Errorf("LCCN = %q, want normalized 30012345", loaded[0].LCCN)
	}
}

func TestReplaceDatasetIsolation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	reg := []*bib.CandidateRecord{{SourceID: "R1", Title: "Registration"}}
	ren := []*bib.CandidateRecord{{SourceID: "N1", Title: "Renewal"}}
	if err := store.ReplaceDataset(ctx, candidatecache.DatasetRegistration, reg); err != nil {
		t.Fatalf("ReplaceDataset registration: %v", err)
	}
	if err := store.ReplaceDataset(ctx, candidatecache.DatasetRenewal, ren); err != nil {
		t.Fatalf("ReplaceDataset renewal: %v", err)
	}

	// Re-importing one dataset must not disturb the other.
	if err := store.ReplaceDataset(ctx, candidatecache.DatasetRegistration, nil); err != nil {
		t.Fatalf("ReplaceDataset empty: %v", err)
	}
	regCount, err := store.Count(ctx, candidatecache.DatasetRegistration)
	if err != nil {
		t.Fatalf("Count registration: %v", err)
	}
	renCount, err := store.Count(ctx, candidatecache.DatasetRenewal)
	if err != nil {
		t.Fatalf("Count renewal: %v", err)
	}
	if regCount != 0 || renCount != 1 {
		t.Errorf("counts = %d/%d, want 0/1", regCount, renCount)
	}
}

func TestImportJSONLines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "renewals.jsonl")
	testsupport.WriteJSONLines(t, path, []*bib.CandidateRecord{
		{SourceID: "N1", Title: "Renewed Work", FullText: "RENEWED WORK by Somebody (New York: A Press)"},
		{SourceID: "N2", Title: "Another Work", Year: testsupport.IntPtr(1952)},
	})

	n, err := store.Import(ctx, candidatecache.DatasetRenewal, path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d records, want 2", n)
	}

	loaded, err := store.LoadDataset(ctx, candidatecache.DatasetRenewal)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if loaded[0].FullText == "" {
		t.Error("full_text not round-tripped")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.db")
	store, err := candidatecache.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	ctx := context.Background()
	if err := store.ReplaceDataset(ctx, candidatecache.DatasetRegistration,
		[]*bib.CandidateRecord{{SourceID: "R1", Title: "Kept"}}); err != nil {
		t.Fatalf("ReplaceDataset: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := candidatecache.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	count, err := reopened.Count(ctx, candidatecache.DatasetRegistration)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count after reopen = %d, want 1", count)
	}
}
