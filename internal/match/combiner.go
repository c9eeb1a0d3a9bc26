package match

import (
	"math"

	"marcpd/internal/config"
)

// Combiner folds three field scores into one combined score using
// scenario-based adaptive weighting. All constants come from the scoring
// configuration; nothing here is hard-coded.
type Combiner struct {
	scoring *config.Scoring
}

// NewCombiner builds a combiner over the given scoring configuration.
func NewCombiner(scoring *config.Scoring) *Combiner {
	return &Combiner{scoring: scoring}
}

// Combine produces the combined score for one candidate comparison.
//
// A field score of 0 is treated as "no data": FieldSimilarity returns 0
// whenever either side is empty, and confirmed mismatches on author and
// publisher rarely reach the combiner because of threshold skips. The
// steps run in a fixed order: scenario weights, generic penalty,
// missing-field redistribution, normalization, weighted sum, multi-field
// validation, LCCN boost, clamp.
func (c *Combiner) Combine(title, author, publisher float64, generic, lccn bool) float64 {
	combined := c.weightedSum(title, author, publisher, generic)
	if !lccn {
		combined = c.validateMultiField(combined, title, author, publisher)
	}
	if lccn && c.scoring.LCCNBoost > 0 {
		combined += c.scoring.LCCNBoost
	}
	if combined > 100 {
		combined = 100
	}
	if combined < 0 {
		combined = 0
	}
	return math.Round(combined*100) / 100
}

func (c *Combiner) weightedSum(title, author, publisher float64, generic bool) float64 {
	authorMissing := author == 0
	publisherMissing := publisher == 0

	// Exactly one supporting field missing with a solid title: redistribute
	// the missing weight instead of dragging the average down. Records
	// legitimately lack authors or publishers; a field that was never
	// compared must not read as a mismatch.
	if title >= c.scoring.RedistributeTitleFloor {
		switch {
		case authorMissing && !publisherMissing:
			share := c.scoring.AuthorMissingTitleShare
			return title*share + publisher*(1-share)
		case publisherMissing && !authorMissing:
			share := c.scoring.PublisherMissingTitleShare
			return title*share + author*(1-share)
		}
	}

	weights := c.scoring.WeightsFor(generic, publisher > 0)
	titleWeight := weights.Title
	if generic {
		titleWeight *= c.scoring.GenericTitlePenalty
	}

	total := titleWeight + weights.Author + weights.Publisher
	if total <= 0 {
		return 0
	}
	return (title*titleWeight + author*weights.Author + publisher*weights.Publisher) / total
}

// validateMultiField guards against single-field false positives. Never
// called for LCCN matches: the identifier is authoritative and exempt.
func (c *Combiner) validateMultiField(combined, title, author, publisher float64) float64 {
	s := c.scoring
	switch {
	case author >= s.HighFieldBar && title < s.VeryLowTitleBar && publisher < s.VeryLowTitleBar:
		// Same author, different work.
		return combined * s.AuthorOnlyPenalty
	case publisher >= s.HighFieldBar && title < s.VeryLowTitleBar && author < s.VeryLowTitleBar:
		// Same publisher, different work.
		return combined * s.PublisherOnlyPenalty
	case title >= s.WeakTitleFloor && title < s.WeakTitleCeiling &&
		author < s.WeakSupportMax && publisher < s.WeakSupportMax:
		// A moderate title with no support from any other field is the
		// classic fuzzy-match false positive.
		if combined > s.WeakTitleCap {
			return s.WeakTitleCap
		}
	}
	return combined
}
