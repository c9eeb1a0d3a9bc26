// Package index provides the multi-key candidate index that narrows a
// full candidate dataset down to the handful of records worth scoring
// for one input. Keys are derived from normalized title, author, and
// publisher words plus the publication year; lookups intersect the per
// field hit sets, most selective first.
//
// An index is built once and read-only afterwards, so it can be shared
// by any number of worker goroutines without locking.
package index

import (
	"sort"

	"marcpd/internal/bib"
)

// Fallback caps for inputs with no year. Without the year filter a
// common-word title can pull in most of the dataset, so oversized hit
// sets are discarded rather than scored.
const (
	noYearTitleCap  = 1000
	noYearAuthorCap = 500
)

// Index is a multi-key inverted index over candidate records.
type Index struct {
	records []*bib.CandidateRecord

	title     map[string][]int32
	author    map[string][]int32
	publisher map[string][]int32
	year      map[int][]int32
}

// New returns an empty index.
func New() *Index {
	return &Index{
		title:     make(map[string][]int32),
		author:    make(map[string][]int32),
		publisher: make(map[string][]int32),
		year:      make(map[int][]int32),
	}
}

// Build indexes every record in order. Record order is preserved: lookups
// return candidates in insertion order, which downstream tie-breaking
// relies on.
func Build(records []*bib.CandidateRecord) *Index {
	idx := New()
	for _, record := range records {
		idx.Add(record)
	}
	return idx
}

// Add indexes one record. Not safe to call concurrently with Lookup.
func (idx *Index) Add(record *bib.CandidateRecord) {
	id := int32(len(idx.records))
	idx.records = append(idx.records, record)

	for key := range titleKeys(record.Title) {
		idx.title[key] = append(idx.title[key], id)
	}
	for key := range authorKeys(record.Author) {
		idx.author[key] = append(idx.author[key], id)
	}
	for key := range publisherKeys(record.Publisher) {
		idx.publisher[key] = append(idx.publisher[key], id)
	}
	if record.Year != nil {
		idx.year[*record.Year] = append(idx.year[*record.Year], id)
	}
}

// Size returns the number of indexed records.
func (idx *Index) Size() int {
	return len(idx.records)
}

// Lookup returns the candidates sharing index keys with the input, in
// insertion order. The year hit set is intersected first when present:
// it is the most selective filter by far. Each further intersection is
// applied only if it leaves at least one candidate, so a missing or
// mismatched field never empties the result on its own.
//
// When the year hit set is empty, either because the input has no year
// or because no candidate carries a year in range, the lookup falls back
// to title hits (or author hits), capped: an uncapped lookup over a
// common title would return most of the dataset. Candidates without a
// year are only reachable through this fallback.
func (idx *Index) Lookup(input *bib.InputRecord, yearTolerance int) []*bib.CandidateRecord {
	titleHits := idx.collect(idx.title, titleKeys(input.Title))
	authorHits := idx.collect(idx.author, authorKeys(input.Author))
	if input.MainAuthor != "" {
		authorHits = union(authorHits, idx.collect(idx.author, authorKeys(input.MainAuthor)))
	}
	publisherHits := idx.collect(idx.publisher, publisherKeys(input.Publisher))

	var yearHits []int32
	if input.Year != nil {
		for offset := -yearTolerance; offset <= yearTolerance; offset++ {
			yearHits = union(yearHits, idx.year[*input.Year+offset])
		}
	}

	var ids []int32
	if len(yearHits) > 0 {
		ids = yearHits
		if len(titleHits) > 0 {
			ids = intersect(ids, titleHits)
			ids = refineNonEmpty(ids, authorHits)
			ids = refineNonEmpty(ids, publisherHits)
		} else if len(authorHits) > 0 {
			ids = intersect(ids, authorHits)
		} else if len(publisherHits) > 0 {
			ids = intersect(ids, publisherHits)
		}
	} else {
		switch {
		case len(titleHits) > 0 && len(titleHits) < noYearTitleCap:
			ids = titleHits
			ids = refineNonEmpty(ids, authorHits)
		case len(authorHits) > 0 && len(authorHits) < noYearAuthorCap:
			ids = authorHits
		}
	}

	if len(ids) == 0 {
		return nil
	}
	out := make([]*bib.CandidateRecord, len(ids))
	for i, id := range ids {
		out[i] = idx.records[id]
	}
	return out
}

// Stats describes index shape, logged after a build.
type Stats struct {
	Records       int
	TitleKeys     int
	AuthorKeys    int
	PublisherKeys int
	YearKeys      int
}

func (idx *Index) Stats() Stats {
	return Stats{
		Records:       len(idx.records),
		TitleKeys:     len(idx.title),
		AuthorKeys:    len(idx.author),
		PublisherKeys: len(idx.publisher),
		YearKeys:      len(idx.year),
	}
}

// collect unions the posting lists for every key, deduplicated and
// sorted so later set operations can merge linearly.
func (idx *Index) collect(postings map[string][]int32, keys map[string]struct{}) []int32 {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[int32]struct{})
	for key := range keys {
		for _, id := range postings[key] {
			seen[id] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	ids := make([]int32, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// refineNonEmpty intersects a with b but keeps a unchanged when the
// intersection would be empty.
func refineNonEmpty(a, b []int32) []int32 {
	if len(a) == 0 || len(b) == 0 {
		return a
	}
	refined := intersect(a, b)
	if len(refined) == 0 {
		return a
	}
	return refined
}

// intersect merges two sorted id slices.
func intersect(a, b []int32) []int32 {
	var out []int32
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// union merges two sorted id slices, deduplicating.
func union(a, b []int32) []int32 {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
