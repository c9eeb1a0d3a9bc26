package textnorm

import "github.com/kljensen/snowball"

// snowballLanguages maps MARC language codes to snowball stemmer names.
// Languages without a stemmer in the library pass through unstemmed, which
// only costs a little recall.
var snowballLanguages = map[string]string{
	"eng": "english",
	"fre": "french",
	"spa": "spanish",
}

// StemWords stems each word for the given MARC language code. Words the
// stemmer rejects are kept verbatim.
func StemWords(words []string, language string) []string {
	lang, ok := snowballLanguages[language]
	if !ok || len(words) == 0 {
		return words
	}
	out := make([]string, len(words))
	for i, word := range words {
		stemmed, err := snowball.Stem(word, lang, false)
		if err != nil || stemmed == "" {
			out[i] = word
			continue
		}
		out[i] = stemmed
	}
	return out
}
