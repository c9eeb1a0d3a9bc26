package match

import "marcpd/internal/bib"

// buildResult assembles the immutable match result for one scored
// candidate. Generic-title info is attached only when a detector is
// present and at least one side is generic.
func buildResult(input *bib.InputRecord, candidate *bib.CandidateRecord, scores ScoreBreakdown, lccn bool, detector GenericDetector) *Result {
	kind := KindSimilarity
	if lccn {
		kind = KindLCCN
	}
	result := &Result{
		Candidate:   *candidate,
		Scores:      scores,
		IsLCCNMatch: lccn,
		Kind:        kind,
	}
	if detector == nil {
		return result
	}

	language := input.LanguageOrDefault()
	inputGeneric := detector.IsGeneric(input.Title, language)
	matchedGeneric := detector.IsGeneric(candidate.Title, language)
	if !inputGeneric && !matchedGeneric {
		return result
	}

	info := &GenericTitleInfo{
		InputTitleGeneric:   inputGeneric,
		MatchedTitleGeneric: matchedGeneric,
	}
	if inputGeneric {
		info.InputDetectionReason = detector.DetectionReason(input.Title, language)
	}
	if matchedGeneric {
		info.MatchedDetectionReason = detector.DetectionReason(candidate.Title, language)
	}
	result.Generic = info
	return result
}
