package bib

import "strings"

// NormalizeLCCN applies the Library of Congress normalization algorithm:
// remove spaces, cut the string at the first forward slash, and expand the
// serial portion after a hyphen to six zero-padded digits.
//
//	"n78-890351"      -> "n78890351"
//	"n78-89035"       -> "n78089035"
//	" 75-425165//r75" -> "75425165"
func NormalizeLCCN(lccn string) string {
	if lccn == "" {
		return ""
	}
	normalized := strings.ReplaceAll(lccn, " ", "")
	if idx := strings.IndexByte(normalized, '/'); idx >= 0 {
		normalized = normalized[:idx]
	}
	if idx := strings.IndexByte(normalized, '-'); idx >= 0 {
		prefix, suffix := normalized[:idx], normalized[idx+1:]
		if len(suffix) <= 6 && isAllDigits(suffix) {
			suffix = strings.Repeat("0", 6-len(suffix)) + suffix
		}
		normalized = strings.ReplaceAll(prefix+suffix, "-", "")
	}
	return normalized
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
