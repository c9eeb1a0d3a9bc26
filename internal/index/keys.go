package index

import (
	"strings"

	"marcpd/internal/textnorm"
)

const (
	maxTitleKeyWords = 4
	minKeyWordLength = 3
)

// titleKeys derives the index keys for a title: significant single words
// plus short leading/trailing word joins. Joined keys make two-word
// titles findable even when every individual word is common.
func titleKeys(title string) map[string]struct{} {
	keys := make(map[string]struct{})
	if title == "" {
		return keys
	}
	words := textnorm.RemoveStopwords(textnorm.Clean(textnorm.Fold(title)), "eng", textnorm.FieldTitle)
	if len(words) > maxTitleKeyWords {
		words = words[:maxTitleKeyWords]
	}
	for _, word := range words {
		if len(word) >= minKeyWordLength {
			keys[word] = struct{}{}
		}
	}
	if len(words) >= 2 {
		keys[strings.Join(words[:2], "_")] = struct{}{}
		if len(words) > 2 {
			keys[strings.Join(words[len(words)-2:], "_")] = struct{}{}
		}
		if len(words) >= 3 {
			keys[strings.Join(words[:3], "_")] = struct{}{}
		}
	}
	return keys
}

// authorKeys derives keys for a personal name in either "Last, First" or
// "First Middle Last" order: surname alone, surname+given pairings in
// both orders, surname+initial, and the individual name parts. Initials
// keep their single letter so "F. Scott Fitzgerald" still meets
// "Fitzgerald, F. Scott" in the index.
func authorKeys(author string) map[string]struct{} {
	keys := make(map[string]struct{})
	if author == "" {
		return keys
	}
	lowered := strings.ToLower(strings.TrimSpace(textnorm.Fold(author)))

	if surname, given, ok := strings.Cut(lowered, ","); ok {
		surname = strings.TrimSpace(textnorm.Clean(surname))
		givenNames := strings.Fields(textnorm.Clean(given))
		if len(surname) >= 2 {
			keys[surname] = struct{}{}
		}
		if surname != "" && len(givenNames) > 0 {
			first := givenNames[0]
			keys[surname+"_"+first] = struct{}{}
			keys[surname+"_"+first[:1]] = struct{}{}
			keys[first+"_"+surname] = struct{}{}
		}
		for _, given := range givenNames {
			if len(given) >= 2 {
				keys[given] = struct{}{}
			}
		}
		return keys
	}

	words := strings.Fields(textnorm.Clean(lowered))
	if len(words) == 0 {
		return keys
	}
	last := words[len(words)-1]
	if len(last) >= 2 {
		keys[last] = struct{}{}
	}
	if len(words) >= 2 {
		first := words[0]
		if len(first) >= 2 {
			keys[first+"_"+last] = struct{}{}
			keys[last+"_"+first] = struct{}{}
		}
		for _, word := range words {
			if word != "" {
				keys[word] = struct{}{}
			}
		}
		keys[last+"_"+first[:1]] = struct{}{}
	}
	return keys
}

// publisherKeys derives keys for a publisher name: significant words with
// the trade stopwords removed, short joins, and the full significant-word
// join so "Houghton Mifflin Company" and "Houghton Mifflin" share a key.
func publisherKeys(publisher string) map[string]struct{} {
	keys := make(map[string]struct{})
	if publisher == "" {
		return keys
	}
	lowered := textnorm.Clean(textnorm.Fold(publisher))

	var significant []string
	for _, word := range textnorm.RemoveStopwords(lowered, "eng", textnorm.FieldPublisher) {
		if len(word) >= minKeyWordLength {
			significant = append(significant, word)
		}
	}
	if len(significant) == 0 {
		// Everything was trade boilerplate; fall back to the general
		// stopword list so the record stays findable.
		for _, word := range textnorm.RemoveStopwords(lowered, "eng", textnorm.FieldTitle) {
			if len(word) >= minKeyWordLength {
				significant = append(significant, word)
			}
			if len(significant) == 3 {
				break
			}
		}
	}
	if len(significant) == 0 {
		return keys
	}

	for _, word := range significant {
		keys[word] = struct{}{}
	}
	if len(significant) >= 2 {
		keys[strings.Join(significant[:2], "_")] = struct{}{}
		if len(significant) > 2 {
			keys[strings.Join(significant[len(significant)-2:], "_")] = struct{}{}
		}
		if len(significant) >= 3 {
			keys[strings.Join(significant[:3], "_")] = struct{}{}
		}
	}
	keys[strings.Join(significant, "_")] = struct{}{}
	return keys
}
