package match

import (
	"testing"

	"marcpd/internal/bib"
	"marcpd/internal/config"
)

// stubScorer returns canned scores and counts title comparisons so tests
// can observe scan order and early exit.
type stubScorer struct {
	title      map[string]float64
	author     map[string]float64
	publisher  map[string]float64
	titleCalls int
}

func (s *stubScorer) TitleSimilarity(a, b, language string) float64 {
	s.titleCalls++
	return s.title[b]
}

func (s *stubScorer) AuthorSimilarity(a, b, language string) float64 {
	return s.author[b]
}

func (s *stubScorer) PublisherSimilarity(a, b, fullText, language string) float64 {
	if b != "" {
		return s.publisher[b]
	}
	return s.publisher[fullText]
}

func intPtr(v int) *int { return &v }

func testThresholds() Thresholds {
	cfg := config.Default()
	return ThresholdsFromConfig(&cfg.Matching)
}

func newTestMatcher(scorer FieldScorer) *Matcher {
	cfg := config.Default()
	return NewMatcher(scorer, NewCombiner(&cfg.Scoring), nil)
}

func candidate(id, title string, year int) *bib.CandidateRecord {
	return &bib.CandidateRecord{SourceID: id, Title: title, Year: intPtr(year)}
}

func TestFindBestMatchLCCNFastPath(t *testing.T) {
	scorer := &stubScorer{title: map[string]float64{"wrong title": 5}}
	m := newTestMatcher(scorer)

	input := &bib.InputRecord{Title: "the real title", Year: intPtr(1950), LCCN: "50001234"}
	other := candidate("c1", "unrelated", 1990)
	hit := candidate("c2", "wrong title", 1990)
	hit.LCCN = "50001234"

	result := m.FindBestMatch(input, []*bib.CandidateRecord{other, hit}, testThresholds())
	if result == nil {
		t.Fatal("expected LCCN match")
	}
	if !result.IsLCCNMatch || result.Kind != KindLCCN {
		t.Errorf("kind = %v, IsLCCNMatch = %v", result.Kind, result.IsLCCNMatch)
	}
	if result.Scores.Combined != 100 {
		t.Errorf("combined = %v, want 100", result.Scores.Combined)
	}
	if result.Candidate.SourceID != "c2" {
		t.Errorf("matched %s, want c2", result.Candidate.SourceID)
	}
}

func TestFindBestMatchYearFilter(t *testing.T) {
	scorer := &stubScorer{title: map[string]float64{"a title": 95}}
	m := newTestMatcher(scorer)

	input := &bib.InputRecord{Title: "a title", Year: intPtr(1950)}
	far := candidate("far", "a title", 1955)

	if got := m.FindBestMatch(input, []*bib.CandidateRecord{far}, testThresholds()); got != nil {
		t.Errorf("candidate outside year tolerance matched: %+v", got)
	}
	if scorer.titleCalls != 0 {
		t.Errorf("scored %d candidates, want 0", scorer.titleCalls)
	}

	near := candidate("near", "a title", 1951)
	if got := m.FindBestMatch(input, []*bib.CandidateRecord{near}, testThresholds()); got == nil {
		t.Error("candidate within year tolerance did not match")
	}

	// A missing year on either side never filters.
	noYear := &bib.CandidateRecord{SourceID: "ny", Title: "a title"}
	if got := m.FindBestMatch(input, []*bib.CandidateRecord{noYear}, testThresholds()); got == nil {
		t.Error("candidate with no year was filtered")
	}
}

func TestFindBestMatchAuthorThreshold(t *testing.T) {
	thresholds := testThresholds()
	input := &bib.InputRecord{
		Title:  "some title",
		Author: "somebody",
		Year:   intPtr(1950),
	}

	// A positive author score below the threshold rejects the candidate.
	low := candidate("low", "low author", 1950)
	low.Author = "else"
	scorer := &stubScorer{
		title:  map[string]float64{"low author": 90},
		author: map[string]float64{"else": 20},
	}
	if got := newTestMatcher(scorer).FindBestMatch(input, []*bib.CandidateRecord{low}, thresholds); got != nil {
		t.Errorf("low author score passed threshold: %+v", got)
	}

	// A zero author score means no data and is exempt.
	empty := candidate("empty", "no author", 1950)
	scorer = &stubScorer{title: map[string]float64{"no author": 90}}
	if got := newTestMatcher(scorer).FindBestMatch(input, []*bib.CandidateRecord{empty}, thresholds); got == nil {
		t.Error("author-less candidate was rejected")
	}
}

func TestFindBestMatchEarlyExit(t *testing.T) {
	// A weak-but-passing candidate first, then one over the early-exit
	// bar, then one that must never be scored.
	scorer := &stubScorer{
		title:  map[string]float64{"weak": 60, "strong": 96, "never": 99},
		author: map[string]float64{},
	}
	m := newTestMatcher(scorer)

	input := &bib.InputRecord{Title: "t", Year: intPtr(1950)}
	candidates := []*bib.CandidateRecord{
		candidate("weak", "weak", 1950),
		candidate("strong", "strong", 1950),
		candidate("never", "never", 1950),
	}

	result := m.FindBestMatch(input, candidates, testThresholds())
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Candidate.SourceID != "strong" {
		t.Errorf("matched %s, want strong (early exit)", result.Candidate.SourceID)
	}
	if scorer.titleCalls != 2 {
		t.Errorf("scored %d candidates, want 2", scorer.titleCalls)
	}
}

func TestFindBestMatchStrictlyGreaterWins(t *testing.T) {
	// Two candidates with identical scores: the earlier one is kept.
	scorer := &stubScorer{
		title: map[string]float64{"tie a": 80, "tie b": 80},
	}
	m := newTestMatcher(scorer)

	input := &bib.InputRecord{Title: "t", Year: intPtr(1950)}
	candidates := []*bib.CandidateRecord{
		candidate("a", "tie a", 1950),
		candidate("b", "tie b", 1950),
	}

	result := m.FindBestMatch(input, candidates, testThresholds())
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Candidate.SourceID != "a" {
		t.Errorf("matched %s, want a", result.Candidate.SourceID)
	}
}

func TestFindBestMatchIgnoreThresholds(t *testing.T) {
	scorer := &stubScorer{
		title: map[string]float64{"weak": 30, "weaker": 10},
	}
	m := newTestMatcher(scorer)

	input := &bib.InputRecord{Title: "t", Year: intPtr(1950)}
	candidates := []*bib.CandidateRecord{
		candidate("weak", "weak", 1950),
		candidate("weaker", "weaker", 1950),
	}

	// No floor: the best sub-threshold match is still returned.
	result := m.FindBestMatchIgnoreThresholds(input, candidates, 1, -1)
	if result == nil {
		t.Fatal("expected a match with no floor")
	}
	if result.Candidate.SourceID != "weak" {
		t.Errorf("matched %s, want weak", result.Candidate.SourceID)
	}

	// The minimum combined score rejects after the scan.
	if got := m.FindBestMatchIgnoreThresholds(input, candidates, 1, 40); got != nil {
		t.Errorf("floor of 40 accepted %v", got.Scores.Combined)
	}
}
