package match

import "marcpd/internal/bib"

// Kind describes how a match was established.
type Kind string

const (
	// KindSimilarity is a match found through fuzzy field scoring.
	KindSimilarity Kind = "similarity"
	// KindLCCN is a match established by exact LCCN equality.
	KindLCCN Kind = "lccn"
	// KindBruteForce marks a similarity match for a record with no year,
	// scored against all candidates. Lower confidence than KindSimilarity.
	KindBruteForce Kind = "brute_force_without_year"
)

// ScoreBreakdown carries the individual field scores next to the combined
// score. All values are in [0, 100]; Combined never exceeds 100, boost or
// not.
type ScoreBreakdown struct {
	Title     float64 `json:"title"`
	Author    float64 `json:"author"`
	Publisher float64 `json:"publisher"`
	Combined  float64 `json:"combined"`
}

// GenericTitleInfo records why the generic-title scenario applied to a
// match, for export and diagnostics.
type GenericTitleInfo struct {
	InputTitleGeneric      bool   `json:"input_title_generic"`
	InputDetectionReason   string `json:"input_detection_reason,omitempty"`
	MatchedTitleGeneric    bool   `json:"matched_title_generic"`
	MatchedDetectionReason string `json:"matched_detection_reason,omitempty"`
}

// Result is the outcome of matching one input record against one candidate
// list. It snapshots the matched candidate and is never mutated after
// construction.
type Result struct {
	Candidate   bib.CandidateRecord `json:"candidate"`
	Scores      ScoreBreakdown      `json:"scores"`
	IsLCCNMatch bool                `json:"is_lccn_match"`
	Kind        Kind                `json:"kind"`
	Generic     *GenericTitleInfo   `json:"generic_title_info,omitempty"`
}

// GenericDetector is the generic-title collaborator consumed by the
// engine. Implementations must be safe for concurrent readers.
type GenericDetector interface {
	IsGeneric(title, language string) bool
	DetectionReason(title, language string) string
}

// FieldScorer is the similarity collaborator consumed by the engine.
type FieldScorer interface {
	TitleSimilarity(a, b, language string) float64
	AuthorSimilarity(a, b, language string) float64
	PublisherSimilarity(a, b, fullText, language string) float64
}
