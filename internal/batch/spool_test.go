package batch

import (
	"os"
	"path/filepath"
	"testing"

	"marcpd/internal/bib"
	"marcpd/internal/testsupport"
)

func inputFixture(n int) []*bib.InputRecord {
	records := make([]*bib.InputRecord, 0, n)
	for i := 0; i < n; i++ {
		year := 1920 + i%30
		records = append(records, &bib.InputRecord{
			SourceID: filepath.Base("rec") + string(rune('a'+i%26)),
			Title:    "Fixture Title",
			Year:     &year,
		})
	}
	return records
}

func TestPartitionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := inputFixture(7)

	handles, err := Partition(records, dir, 3)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("got %d handles, want 3", len(handles))
	}
	if handles[0].Count != 3 || handles[2].Count != 1 {
		t.Errorf("counts = %d, %d, %d", handles[0].Count, handles[1].Count, handles[2].Count)
	}

	loaded, err := handles[0].Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("read %d records, want 3", len(loaded))
	}
	if loaded[0].Year == nil {
		t.Error("year lost in spool round trip")
	}

	// The input file is consumed on read.
	if _, err := os.Stat(handles[0].Path); !os.IsNotExist(err) {
		t.Errorf("batch file still exists after read: %v", err)
	}
}

func TestReadDeletesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch-00001.jsonl")
	if err := os.WriteFile(path, []byte("{not json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	handle := Handle{ID: 1, Path: path, Count: 1}
	if _, err := handle.Read(); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt batch file was not deleted")
	}
}

func TestPartitionRejectsBadBatchSize(t *testing.T) {
	if _, err := Partition(inputFixture(1), t.TempDir(), 0); err == nil {
		t.Fatal("expected error for batch size 0")
	}
}

func TestReadInputFileNormalizesLCCN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.jsonl")
	testsupport.WriteJSONLines(t, path, []*bib.InputRecord{
		{SourceID: "in1", Title: "Some Work", LCCN: "30-12345"},
	})

	records, err := ReadInputFile(path)
	if err != nil {
		t.Fatalf("ReadInputFile failed: %v", err)
	}
	if records[0].LCCN != "30012345" {
		t.Errorf("LCCN = %q, want normalized 30012345", records[0].LCCN)
	}
}

func TestStatsMergeIsOrderIndependent(t *testing.T) {
	a := Stats{Processed: 3, RegistrationMatches: 1, USRecords: 2, UnknownCountryRecords: 1, Seconds: 1.5}
	b := Stats{Processed: 2, RenewalMatches: 2, SkippedNoYear: 1, NonUSRecords: 2, Errors: 1, Seconds: 0.5}

	var ab, ba Stats
	ab.Merge(a)
	ab.Merge(b)
	ba.Merge(b)
	ba.Merge(a)
	if ab != ba {
		t.Errorf("merge order changed totals: %+v vs %+v", ab, ba)
	}
	if ab.Processed != 5 || ab.Seconds != 2.0 {
		t.Errorf("unexpected totals: %+v", ab)
	}
	if ab.USRecords != 2 || ab.NonUSRecords != 2 || ab.UnknownCountryRecords != 1 || ab.Errors != 1 {
		t.Errorf("unexpected country/error totals: %+v", ab)
	}
}
