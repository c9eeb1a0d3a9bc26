package textnorm

import "strings"

// Field identifies which record field a comparison operates on. Stopword
// lists and similarity pipelines are field-specific.
type Field string

const (
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldPublisher Field = "publisher"
)

// fieldStopwords holds per-language, per-field stopword sets. Lists were
// tuned against ground-truth match data: titles carry a full function-word
// list, authors and publishers only the words that never disambiguate.
var fieldStopwords = map[string]map[Field]map[string]struct{}{
	"eng": {
		FieldTitle: wordSet(
			"a", "an", "and", "are", "as", "at", "be", "been", "by", "for",
			"from", "had", "has", "have", "he", "in", "is", "it", "its",
			"not", "of", "on", "or", "that", "the", "their", "there",
			"these", "they", "this", "those", "to", "was", "were", "will",
			"with",
		),
		FieldAuthor: wordSet(
			"by", "dr", "ed", "editor", "jr", "mr", "mrs", "prof", "sir",
			"sr",
		),
		FieldPublisher: wordSet(
			"and", "co", "company", "incorporated", "of", "press",
			"publishers", "publishing", "the",
		),
	},
	"fre": {
		FieldTitle: wordSet(
			"au", "aux", "avec", "ce", "ces", "dans", "de", "des", "du",
			"elle", "en", "et", "il", "la", "le", "les", "par", "pour",
			"que", "qui", "sur", "un", "une",
		),
		FieldAuthor:    wordSet("par"),
		FieldPublisher: wordSet("cie", "de", "et", "la", "le", "les", "librairie"),
	},
	"ger": {
		FieldTitle: wordSet(
			"das", "dem", "den", "der", "des", "die", "ein", "eine", "einer",
			"fur", "im", "in", "mit", "und", "von", "zu", "zum", "zur",
		),
		FieldAuthor:    wordSet("von"),
		FieldPublisher: wordSet("der", "und", "verlag", "von"),
	},
	"spa": {
		FieldTitle: wordSet(
			"con", "de", "del", "el", "en", "la", "las", "los", "para",
			"por", "que", "un", "una", "y",
		),
		FieldAuthor:    wordSet("por"),
		FieldPublisher: wordSet("de", "editorial", "la", "y"),
	},
	"ita": {
		FieldTitle: wordSet(
			"con", "da", "degli", "dei", "del", "della", "di", "e", "gli",
			"i", "il", "in", "la", "le", "lo", "per", "un", "una",
		),
		FieldAuthor:    wordSet("di"),
		FieldPublisher: wordSet("di", "e", "editore", "la"),
	},
}

// preserveWords are stopwords that still carry signal for a given field and
// are kept despite appearing in the stopword list.
var preserveWords = map[Field]map[string]struct{}{
	FieldPublisher: wordSet("press"),
}

const minWordLength = 2

// RemoveStopwords splits text into words and drops stopwords for the given
// language and field. Unknown languages fall back to English lists. Words
// shorter than two characters are dropped unless they are digits.
func RemoveStopwords(text, language string, field Field) []string {
	if text == "" {
		return nil
	}
	words := strings.Fields(strings.ToLower(text))
	stops := stopwordsFor(language, field)
	keep := preserveWords[field]

	out := make([]string, 0, len(words))
	for _, word := range words {
		if _, preserved := keep[word]; preserved {
			out = append(out, word)
			continue
		}
		if _, stop := stops[word]; stop {
			continue
		}
		if len(word) >= minWordLength || isDigits(word) {
			out = append(out, word)
		}
	}
	return out
}

// StopwordsFor exposes the stopword set for index key generation.
func StopwordsFor(language string, field Field) map[string]struct{} {
	return stopwordsFor(language, field)
}

func stopwordsFor(language string, field Field) map[string]struct{} {
	byField, ok := fieldStopwords[language]
	if !ok {
		byField = fieldStopwords["eng"]
	}
	stops, ok := byField[field]
	if !ok {
		stops = byField[FieldTitle]
	}
	return stops
}

func isDigits(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
