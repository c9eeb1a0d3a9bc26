package match

import "marcpd/internal/bib"

// CheckLCCN scans candidates for an exact normalized-LCCN match. The scan
// is a single pass over the candidate list with no fuzzy fallback; the
// first hit wins. A hit is authoritative: callers bypass field thresholds
// entirely.
func CheckLCCN(input *bib.InputRecord, candidates []*bib.CandidateRecord) *bib.CandidateRecord {
	if input.LCCN == "" {
		return nil
	}
	for _, candidate := range candidates {
		if candidate.LCCN != "" && candidate.LCCN == input.LCCN {
			return candidate
		}
	}
	return nil
}
