package similarity

import (
	"strings"

	"marcpd/internal/textnorm"
)

// Options tunes the normalization applied before scoring.
type Options struct {
	EnableStemming  bool
	ExpandAbbrevs   bool
	DefaultLanguage string
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		EnableStemming:  true,
		ExpandAbbrevs:   true,
		DefaultLanguage: "eng",
	}
}

// Calculator scores field similarity between an input record and a
// candidate. It is stateless apart from its options and safe for
// concurrent use.
type Calculator struct {
	opts Options
}

// NewCalculator builds a calculator with the given options.
func NewCalculator(opts Options) *Calculator {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "eng"
	}
	return &Calculator{opts: opts}
}

// Similarity dispatches to the field-specific pipeline. Comparing against
// an empty string always yields 0; callers decide whether an absent field
// is excluded from combination rather than treated as a mismatch.
func (c *Calculator) Similarity(a, b string, field textnorm.Field, language string) float64 {
	switch field {
	case textnorm.FieldTitle:
		return c.TitleSimilarity(a, b, language)
	case textnorm.FieldAuthor:
		return c.AuthorSimilarity(a, b, language)
	case textnorm.FieldPublisher:
		return c.PublisherSimilarity(a, b, "", language)
	default:
		if a == "" || b == "" {
			return 0
		}
		return Ratio(strings.ToLower(a), strings.ToLower(b))
	}
}

// TitleSimilarity runs the full normalization pipeline on both titles and
// scores them with containment detection and overlap-weighted fuzzy
// matching.
func (c *Calculator) TitleSimilarity(a, b, language string) float64 {
	if a == "" || b == "" {
		return 0
	}
	language = c.language(language)

	wordsA := c.normalizeField(a, language, textnorm.FieldTitle)
	wordsB := c.normalizeField(b, language, textnorm.FieldTitle)

	switch {
	case len(wordsA) == 0 && len(wordsB) == 0:
		// Both collapsed to nothing under normalization. Identical
		// originals are still a match.
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
			return 100
		}
		return 0
	case len(wordsA) == 0 || len(wordsB) == 0:
		return 0
	}

	if c.opts.EnableStemming {
		wordsA = textnorm.StemWords(wordsA, language)
		wordsB = textnorm.StemWords(wordsB, language)
	}
	normA := strings.Join(wordsA, " ")
	normB := strings.Join(wordsB, " ")

	if score := titleContainment(normA, normB, a, b); score > 0 {
		return score
	}
	return smartTitleMatch(normA, normB, wordsA, wordsB, a, b)
}

// AuthorSimilarity scores personal or corporate names. Token-set matching
// absorbs "Surname, Given" inversions; a noise floor keeps unrelated names
// at zero.
func (c *Calculator) AuthorSimilarity(a, b, language string) float64 {
	if a == "" || b == "" {
		return 0
	}
	language = c.language(language)

	normA := strings.Join(c.normalizeField(a, language, textnorm.FieldAuthor), " ")
	normB := strings.Join(c.normalizeField(b, language, textnorm.FieldAuthor), " ")
	if normA == "" || normB == "" {
		return 0
	}

	score := TokenSetRatio(normA, normB)

	// Unrelated names routinely score 25-50 under token-set matching.
	if score < 60 {
		return 0
	}

	// Large word-count gaps usually mean corporate vs personal name.
	wordsA := len(strings.Fields(normA))
	wordsB := len(strings.Fields(normB))
	if diff := wordsA - wordsB; diff > 3 || diff < -3 {
		score *= 0.7
	}
	return score
}

// PublisherSimilarity compares publisher statements. When fullText is
// non-empty (renewal entries) the input publisher is matched against it
// with a sliding partial ratio instead of the parsed field.
func (c *Calculator) PublisherSimilarity(a, b, fullText, language string) float64 {
	if a == "" {
		return 0
	}
	language = c.language(language)

	normA := strings.Join(c.normalizeField(a, language, textnorm.FieldPublisher), " ")
	if normA == "" {
		return 0
	}

	if fullText != "" {
		return PartialRatio(normA, strings.ToLower(textnorm.Fold(fullText)))
	}
	if b == "" {
		return 0
	}
	normB := strings.Join(c.normalizeField(b, language, textnorm.FieldPublisher), " ")
	if normB == "" {
		return 0
	}
	return Ratio(normA, normB)
}

func (c *Calculator) normalizeField(text, language string, field textnorm.Field) []string {
	normalized := strings.ToLower(textnorm.Fold(text))
	if c.opts.ExpandAbbrevs {
		normalized = textnorm.ExpandAbbreviations(normalized)
	}
	normalized = textnorm.NormalizeNumbers(normalized, language)
	normalized = textnorm.Clean(normalized)
	return textnorm.RemoveStopwords(normalized, language, field)
}

func (c *Calculator) language(language string) string {
	if language == "" {
		return c.opts.DefaultLanguage
	}
	return language
}

// titleContainment detects one title contained in the other, which covers
// base titles extended with subtitles or years ("Tax Guide" vs "Tax Guide
// 1934"). Returns 0 when no significant containment is found.
func titleContainment(normA, normB, origA, origB string) float64 {
	minOrig := len(origA)
	if len(origB) < minOrig {
		minOrig = len(origB)
	}
	// Very short titles produce spurious containment.
	if minOrig < 8 {
		return 0
	}

	var shorter, longer string
	switch {
	case strings.Contains(normB, normA):
		shorter, longer = normA, normB
	case strings.Contains(normA, normB):
		shorter, longer = normB, normA
	default:
		return 0
	}
	if len(shorter) < 5 || len(strings.Fields(shorter)) < 2 {
		return 0
	}

	ratio := float64(len(shorter)) / float64(len(longer))
	if ratio <= 0.3 {
		return 0
	}
	if strings.HasPrefix(longer, shorter) {
		// Base title plus subtitle: high confidence.
		score := 80 + ratio*20
		if score < 85 {
			score = 85
		}
		return score
	}
	return 75 + ratio*15
}

// smartTitleMatch applies overlap-aware fuzzy matching to reduce false
// positives from shared common words and over-aggressive stemming.
func smartTitleMatch(normA, normB string, wordsA, wordsB []string, origA, origB string) float64 {
	setA := tokenSet(normA)
	setB := tokenSet(normB)

	minDistinctive := len(setA)
	if len(setB) < minDistinctive {
		minDistinctive = len(setB)
	}
	if minDistinctive == 0 {
		if strings.EqualFold(strings.TrimSpace(origA), strings.TrimSpace(origB)) {
			return 100
		}
		return 0
	}
	if normA == normB {
		return 100
	}

	overlap := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			overlap++
		}
	}

	if sameSets(setA, setB) {
		return TokenSortRatio(normA, normB)
	}

	switch overlap {
	case 0:
		return 0
	case 1:
		base := TokenSortRatio(normA, normB)
		if minDistinctive <= 2 {
			// "Othello" vs "Othello illustrated": a single shared word
			// can carry a very short title.
			return minFloat(60, base*0.8)
		}
		// "Annual Report" vs "Annual Review": one shared word on longer
		// titles is usually coincidence.
		return minFloat(40, base*0.6)
	}

	maxPossible := len(setA)
	if len(setB) > maxPossible {
		maxPossible = len(setB)
	}
	overlapRatio := float64(overlap) / float64(maxPossible)

	score := TokenSortRatio(normA, normB)
	if overlapRatio < 0.6 {
		score *= 0.4 + overlapRatio
	}

	if len(wordsA)+len(wordsB) <= 4 {
		score *= 0.8
	}

	// Stems agreeing while originals diverge signals a stem collision
	// (England/English).
	if score > 60 {
		originalScore := TokenSortRatio(strings.ToLower(origA), strings.ToLower(origB))
		if originalScore < score*0.7 {
			score *= 0.7
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func sameSets(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
