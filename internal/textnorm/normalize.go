package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes to NFD, drops combining marks, and recomposes, so
// accented characters compare equal to their ASCII forms (è -> e).
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// encodingFixes repairs mojibake sequences observed in the source catalogs
// before folding. The list is short on purpose: only corruptions confirmed
// in the data belong here.
var encodingFixes = strings.NewReplacer(
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¤", "ä",
	"Ã¶", "ö",
	"Ã¼", "ü",
	"Ã±", "ñ",
	"Ã§", "ç",
	"â", "'",
	"â", "\"",
	"â", "\"",
)

// Fold normalizes Unicode text and folds it to ASCII. Characters outside
// the ASCII range that have no decomposition are kept as-is.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	fixed := encodingFixes.Replace(text)
	folded, _, err := transform.String(asciiFold, fixed)
	if err != nil {
		return fixed
	}
	return folded
}

// Clean lowercases text, removes punctuation except intra-word hyphens, and
// collapses runs of whitespace. Bracketed segments ([microform] and the
// like) are dropped entirely.
func Clean(text string) string {
	text = Fold(text)
	text = stripBrackets(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripBrackets(text string) string {
	if !strings.ContainsRune(text, '[') {
		return text
	}
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
