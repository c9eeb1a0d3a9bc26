package similarity

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio is the plain edit-distance similarity of two strings on a 0-100
// scale: identical strings score 100, disjoint strings approach 0.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

// TokenSortRatio sorts the words of both strings before comparing, so word
// order does not affect the score ("report annual" == "annual report").
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// TokenSetRatio compares the shared-word core of both strings against each
// full string and returns the best of the three comparisons. It is the most
// forgiving of the family and suits personal names, where "Smith, John"
// must match "John Smith".
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var common, diffA, diffB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common = append(common, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			diffB = append(diffB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(diffA)
	sort.Strings(diffB)

	core := strings.Join(common, " ")
	full1 := strings.TrimSpace(core + " " + strings.Join(diffA, " "))
	full2 := strings.TrimSpace(core + " " + strings.Join(diffB, " "))

	best := Ratio(core, full1)
	if s := Ratio(core, full2); s > best {
		best = s
	}
	if s := Ratio(full1, full2); s > best {
		best = s
	}
	return best
}

// PartialRatio scores the best alignment of the shorter string inside the
// longer one, used when one side is a short field and the other a full
// entry text.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}

	window := len(shorter)
	best := 0.0
	for start := 0; start+window <= len(longer); start++ {
		score := Ratio(string(shorter), string(longer[start:start+window]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
