package match

import (
	"strings"

	"marcpd/internal/bib"
	"marcpd/internal/config"
)

// Thresholds are the per-scan matching parameters. They mirror the
// matching section of the configuration but travel as a value so batch
// jobs can carry them.
type Thresholds struct {
	Title              int
	Author             int
	Publisher          int
	EarlyExitTitle     int
	EarlyExitAuthor    int
	EarlyExitPublisher int
	YearTolerance      int
}

// ThresholdsFromConfig copies the matching config into scan parameters.
func ThresholdsFromConfig(m *config.Matching) Thresholds {
	return Thresholds{
		Title:              m.TitleThreshold,
		Author:             m.AuthorThreshold,
		Publisher:          m.PublisherThreshold,
		EarlyExitTitle:     m.EarlyExitTitle,
		EarlyExitAuthor:    m.EarlyExitAuthor,
		EarlyExitPublisher: m.EarlyExitPublisher,
		YearTolerance:      m.YearTolerance,
	}
}

// Matcher orchestrates LCCN matching, field similarity, and score
// combination over one candidate list at a time. Safe for concurrent use
// as long as its collaborators are.
type Matcher struct {
	scorer   FieldScorer
	combiner *Combiner
	detector GenericDetector
}

// NewMatcher builds a matcher from its collaborators. detector may be nil,
// in which case the generic-title scenario never applies.
func NewMatcher(scorer FieldScorer, combiner *Combiner, detector GenericDetector) *Matcher {
	return &Matcher{scorer: scorer, combiner: combiner, detector: detector}
}

// FindBestMatch scans candidates in index order and returns the best match
// passing all thresholds, or nil.
//
// The LCCN fast path runs first: an exact identifier match short-circuits
// the scan with combined=100 and no threshold checks. Otherwise candidates
// are filtered by year tolerance and per-field thresholds, scored, and the
// strictly best combined score wins — ties go to the earlier candidate, so
// index order is part of the contract. A candidate clearing every
// early-exit bar returns immediately without scanning the rest.
func (m *Matcher) FindBestMatch(input *bib.InputRecord, candidates []*bib.CandidateRecord, params Thresholds) *Result {
	if hit := CheckLCCN(input, candidates); hit != nil {
		return m.lccnResult(input, hit)
	}

	language := input.LanguageOrDefault()
	var best *Result
	bestScore := -1.0

	for _, candidate := range candidates {
		if !withinYearTolerance(input.Year, candidate.Year, params.YearTolerance) {
			continue
		}

		titleScore := m.scorer.TitleSimilarity(input.Title, candidate.Title, language)
		if titleScore < float64(params.Title) {
			continue
		}

		authorScore := m.bestAuthorScore(input, candidate, language)
		// Threshold applies only to a meaningful author comparison. A zero
		// means no data (or noise-floored), and absence of data is policy,
		// not a mismatch.
		if authorScore > 0 && authorScore < float64(params.Author) {
			continue
		}

		publisherScore, hasPublisherData := m.publisherScore(input, candidate, language)
		if hasPublisherData && publisherScore < float64(params.Publisher) {
			continue
		}

		generic := m.hasGenericTitle(input, candidate, language)
		combined := m.combiner.Combine(titleScore, authorScore, publisherScore, generic, false)

		scores := ScoreBreakdown{
			Title:     titleScore,
			Author:    authorScore,
			Publisher: publisherScore,
			Combined:  combined,
		}

		if m.earlyExit(input, candidate, scores, params) {
			return buildResult(input, candidate, scores, false, m.detector)
		}
		if combined > bestScore {
			bestScore = combined
			best = buildResult(input, candidate, scores, false, m.detector)
		}
	}
	return best
}

// FindBestMatchIgnoreThresholds scores every year-eligible candidate and
// keeps the single best, subject only to an optional minimum combined
// score. Calibration mode: per-field thresholds and early exit do not
// apply. minimumCombined < 0 disables the floor.
func (m *Matcher) FindBestMatchIgnoreThresholds(input *bib.InputRecord, candidates []*bib.CandidateRecord, yearTolerance int, minimumCombined int) *Result {
	if hit := CheckLCCN(input, candidates); hit != nil {
		return m.lccnResult(input, hit)
	}

	language := input.LanguageOrDefault()
	var best *Result
	bestScore := -1.0

	for _, candidate := range candidates {
		if !withinYearTolerance(input.Year, candidate.Year, yearTolerance) {
			continue
		}

		titleScore := m.scorer.TitleSimilarity(input.Title, candidate.Title, language)
		authorScore := m.bestAuthorScore(input, candidate, language)
		publisherScore, _ := m.publisherScore(input, candidate, language)

		generic := m.hasGenericTitle(input, candidate, language)
		combined := m.combiner.Combine(titleScore, authorScore, publisherScore, generic, false)

		if combined > bestScore {
			bestScore = combined
			best = buildResult(input, candidate, ScoreBreakdown{
				Title:     titleScore,
				Author:    authorScore,
				Publisher: publisherScore,
				Combined:  combined,
			}, false, m.detector)
		}
	}

	if best != nil && minimumCombined >= 0 && best.Scores.Combined < float64(minimumCombined) {
		return nil
	}
	return best
}

// lccnResult builds the authoritative result for an exact identifier hit.
// Field scores are still computed for diagnostics, but they play no part
// in accepting the match: combined is forced to 100.
func (m *Matcher) lccnResult(input *bib.InputRecord, candidate *bib.CandidateRecord) *Result {
	language := input.LanguageOrDefault()
	publisherScore, _ := m.publisherScore(input, candidate, language)
	scores := ScoreBreakdown{
		Title:     m.scorer.TitleSimilarity(input.Title, candidate.Title, language),
		Author:    m.bestAuthorScore(input, candidate, language),
		Publisher: publisherScore,
		Combined:  100,
	}
	return buildResult(input, candidate, scores, true, m.detector)
}

// bestAuthorScore compares every pairing of the input's author fields with
// the candidate author and keeps the best. Catalog practice spreads the
// same name across the main entry and the statement of responsibility, so
// cross-comparisons matter.
func (m *Matcher) bestAuthorScore(input *bib.InputRecord, candidate *bib.CandidateRecord, language string) float64 {
	best := 0.0
	if input.MainAuthor != "" || candidate.Author != "" {
		if s := m.scorer.AuthorSimilarity(input.MainAuthor, candidate.Author, language); s > best {
			best = s
		}
	}
	if input.Author != "" || candidate.Author != "" {
		if s := m.scorer.AuthorSimilarity(input.Author, candidate.Author, language); s > best {
			best = s
		}
	}
	return best
}

func (m *Matcher) publisherScore(input *bib.InputRecord, candidate *bib.CandidateRecord, language string) (float64, bool) {
	if strings.TrimSpace(input.Publisher) == "" {
		return 0, false
	}
	if strings.TrimSpace(candidate.Publisher) != "" {
		return m.scorer.PublisherSimilarity(input.Publisher, candidate.Publisher, "", language), true
	}
	if strings.TrimSpace(candidate.FullText) != "" {
		return m.scorer.PublisherSimilarity(input.Publisher, "", candidate.FullText, language), true
	}
	return 0, false
}

func (m *Matcher) hasGenericTitle(input *bib.InputRecord, candidate *bib.CandidateRecord, language string) bool {
	if m.detector == nil {
		return false
	}
	return m.detector.IsGeneric(input.Title, language) || m.detector.IsGeneric(candidate.Title, language)
}

// earlyExit reports whether the candidate clears every high-confidence
// bar. Fields with no data on either side are exempt from their bar.
func (m *Matcher) earlyExit(input *bib.InputRecord, candidate *bib.CandidateRecord, scores ScoreBreakdown, params Thresholds) bool {
	if scores.Title < float64(params.EarlyExitTitle) {
		return false
	}
	hasAuthorData := input.HasAuthorData() || candidate.HasAuthorData()
	if hasAuthorData && scores.Author < float64(params.EarlyExitAuthor) {
		return false
	}
	hasPublisherData := strings.TrimSpace(input.Publisher) != "" && strings.TrimSpace(candidate.PublisherText()) != ""
	if hasPublisherData && scores.Publisher < float64(params.EarlyExitPublisher) {
		return false
	}
	return true
}

func withinYearTolerance(a, b *int, tolerance int) bool {
	if a == nil || b == nil {
		return true
	}
	diff := *a - *b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
