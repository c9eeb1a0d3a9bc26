package textnorm

import "strings"

// bibAbbreviations maps common bibliographic abbreviations to their
// expansions. Matching is done on lowercased words with trailing
// punctuation stripped.
var bibAbbreviations = map[string]string{
	"co":     "company",
	"corp":   "corporation",
	"inc":    "incorporated",
	"ltd":    "limited",
	"pub":    "publisher",
	"pubs":   "publishers",
	"publ":   "publishing",
	"print":  "printing",
	"pr":     "press",
	"univ":   "university",
	"dept":   "department",
	"govt":   "government",
	"assn":   "association",
	"soc":    "society",
	"inst":   "institute",
	"intl":   "international",
	"natl":   "national",
	"amer":   "american",
	"bros":   "brothers",
	"ed":     "edition",
	"rev":    "revised",
	"vol":    "volume",
	"vols":   "volumes",
	"no":     "number",
	"nos":    "numbers",
	"tr":     "translated",
	"trans":  "translated",
	"illus":  "illustrated",
	"introd": "introduction",
	"pseud":  "pseudonym",
	"comp":   "compiled",
	"supt":   "superintendent",
	"st":     "saint",
	"mt":     "mount",
}

// ExpandAbbreviations expands bibliographic abbreviations word by word.
// Expansion is conservative: a word qualifies only when it ends with a
// period or is shorter than five characters, which avoids rewriting words
// that merely share a spelling with an abbreviation.
func ExpandAbbreviations(text string) string {
	if text == "" {
		return text
	}
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, word := range words {
		clean := strings.TrimRight(word, ".,;:!?")
		expanded, ok := bibAbbreviations[clean]
		if !ok || (!strings.HasSuffix(word, ".") && len(clean) >= 5) {
			out = append(out, word)
			continue
		}
		// Trailing punctuation survives expansion; Clean strips it later.
		out = append(out, expanded+word[len(clean):])
	}
	return strings.Join(out, " ")
}
