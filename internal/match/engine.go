package match

import (
	"marcpd/internal/bib"
	"marcpd/internal/config"
)

// CandidateSource yields the candidates worth scoring for one input
// record. Implementations decide how aggressively to narrow the list;
// returning every record is always correct, just slow.
type CandidateSource interface {
	Lookup(input *bib.InputRecord, yearTolerance int) []*bib.CandidateRecord
	Size() int
}

// Outcome pairs the registration and renewal results for one input
// record. Either side may be nil when no candidate cleared the bar.
type Outcome struct {
	SourceID     string  `json:"source_id"`
	Registration *Result `json:"registration,omitempty"`
	Renewal      *Result `json:"renewal,omitempty"`
}

// Engine runs the full match for one input record against both candidate
// sets. One engine is shared by all workers when the index is shared; the
// per-worker strategy builds one engine per worker.
type Engine struct {
	matcher      *Matcher
	registration CandidateSource
	renewal      CandidateSource

	params          Thresholds
	scoreEverything bool
	bruteForce      bool
	minimumCombined int
}

// NewEngine assembles an engine from its collaborators and the matching
// config. renewal may be nil when only registration data is loaded.
func NewEngine(matcher *Matcher, registration, renewal CandidateSource, cfg *config.Matching) *Engine {
	return &Engine{
		matcher:         matcher,
		registration:    registration,
		renewal:         renewal,
		params:          ThresholdsFromConfig(cfg),
		scoreEverything: cfg.ScoreEverything,
		bruteForce:      cfg.BruteForceMissingYear,
		minimumCombined: cfg.MinimumCombinedScore,
	}
}

// Match scores one input record against both candidate sets and returns
// the paired outcome. Inputs with no year are skipped unless brute-force
// mode is on, in which case they are scored with no year constraint and
// any similarity result is downgraded to the brute-force kind.
func (e *Engine) Match(input *bib.InputRecord) *Outcome {
	outcome := &Outcome{SourceID: input.SourceID}
	outcome.Registration = e.matchAgainst(input, e.registration)
	if e.renewal != nil {
		outcome.Renewal = e.matchAgainst(input, e.renewal)
	}
	return outcome
}

func (e *Engine) matchAgainst(input *bib.InputRecord, source CandidateSource) *Result {
	if source == nil {
		return nil
	}

	bruteForced := input.Year == nil
	if bruteForced && !e.bruteForce {
		return nil
	}

	candidates := source.Lookup(input, e.params.YearTolerance)
	var result *Result
	if e.scoreEverything {
		result = e.matcher.FindBestMatchIgnoreThresholds(input, candidates, e.params.YearTolerance, e.minimumCombined)
	} else {
		result = e.matcher.FindBestMatch(input, candidates, e.params)
	}
	if result != nil && bruteForced && !result.IsLCCNMatch {
		result.Kind = KindBruteForce
	}
	return result
}
