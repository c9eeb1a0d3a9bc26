package index

import (
	"fmt"
	"testing"

	"marcpd/internal/bib"
)

func intPtr(v int) *int { return &v }

func record(id, title, author, publisher string, year int) *bib.CandidateRecord {
	r := &bib.CandidateRecord{SourceID: id, Title: title, Author: author, Publisher: publisher}
	if year != 0 {
		r.Year = intPtr(year)
	}
	return r
}

func ids(records []*bib.CandidateRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SourceID
	}
	return out
}

func TestLookupYearFirst(t *testing.T) {
	idx := Build([]*bib.CandidateRecord{
		record("near", "the great gatsby", "fitzgerald, f. scott", "scribner", 1925),
		record("far", "the great gatsby", "fitzgerald, f. scott", "scribner", 1950),
		record("noise", "gardening monthly", "smith, john", "", 1925),
	})

	input := &bib.InputRecord{
		Title:  "The Great Gatsby",
		Author: "Fitzgerald, F. Scott",
		Year:   intPtr(1925),
	}
	got := ids(idx.Lookup(input, 1))
	if len(got) != 1 || got[0] != "near" {
		t.Errorf("Lookup = %v, want [near]", got)
	}
}

func TestLookupInsertionOrder(t *testing.T) {
	idx := Build([]*bib.CandidateRecord{
		record("b", "collected poems", "", "", 1940),
		record("a", "collected poems", "", "", 1940),
		record("c", "collected poems", "", "", 1940),
	})

	input := &bib.InputRecord{Title: "Collected Poems", Year: intPtr(1940)}
	got := ids(idx.Lookup(input, 1))
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Lookup = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lookup = %v, want %v (insertion order)", got, want)
		}
	}
}

func TestLookupMismatchedFieldDoesNotEmpty(t *testing.T) {
	// The author intersection would be empty; the title+year hits must
	// survive it.
	idx := Build([]*bib.CandidateRecord{
		record("c1", "history of the civil war", "jones, mary", "", 1930),
	})

	input := &bib.InputRecord{
		Title:  "History of the Civil War",
		Author: "completely different person",
		Year:   intPtr(1930),
	}
	if got := ids(idx.Lookup(input, 1)); len(got) != 1 {
		t.Errorf("Lookup = %v, want the title+year hit", got)
	}
}

func TestLookupYearlessCandidateReachable(t *testing.T) {
	idx := Build([]*bib.CandidateRecord{
		record("undated", "treatise on practical navigation", "bowditch, nathaniel", "", 0),
	})

	input := &bib.InputRecord{
		Title: "Treatise on Practical Navigation",
		Year:  intPtr(1930),
	}
	if got := ids(idx.Lookup(input, 1)); len(got) != 1 {
		t.Errorf("Lookup = %v, want the undated candidate via fallback", got)
	}
}

func TestLookupNoYearCapped(t *testing.T) {
	records := make([]*bib.CandidateRecord, 0, noYearTitleCap+10)
	for i := 0; i < noYearTitleCap+10; i++ {
		records = append(records, record(fmt.Sprintf("c%d", i), "annual catalogue", "", "", 1900+i%40))
	}
	idx := Build(records)

	input := &bib.InputRecord{Title: "Annual Catalogue"}
	if got := idx.Lookup(input, 1); got != nil {
		t.Errorf("no-year lookup over %d identical titles returned %d candidates, want none", noYearTitleCap+10, len(got))
	}
}

func TestAuthorKeysNameOrders(t *testing.T) {
	inverted := authorKeys("Fitzgerald, F. Scott")
	direct := authorKeys("F. Scott Fitzgerald")

	shared := false
	for key := range inverted {
		if _, ok := direct[key]; ok {
			shared = true
			break
		}
	}
	if !shared {
		t.Errorf("no shared key between %v and %v", inverted, direct)
	}
}

func TestPublisherKeysStopwordFallback(t *testing.T) {
	if keys := publisherKeys("The Publishing Company Inc."); len(keys) == 0 {
		t.Error("all-boilerplate publisher produced no keys")
	}
	keys := publisherKeys("Houghton Mifflin Company")
	if _, ok := keys["houghton_mifflin"]; !ok {
		t.Errorf("missing joined key, got %v", keys)
	}
}

func TestStats(t *testing.T) {
	idx := Build([]*bib.CandidateRecord{
		record("c1", "some title here", "author, an", "publisher name", 1950),
	})
	stats := idx.Stats()
	if stats.Records != 1 || stats.TitleKeys == 0 || stats.AuthorKeys == 0 || stats.PublisherKeys == 0 || stats.YearKeys != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
