// Package match implements the matching engine: exact LCCN matching,
// adaptive score combination, and the candidate-scan orchestration that
// turns a list of retrieved candidates into at most one MatchResult per
// input record.
//
// The engine is deterministic: candidate order is significant (ties go to
// the first candidate seen, early exit stops the scan), so the candidate
// index must hand over stable-ordered lists.
package match
