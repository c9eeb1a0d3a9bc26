package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	romanPattern   = regexp.MustCompile(`^(m{0,3})(cm|cd|d?c{0,3})(xc|xl|l?x{0,3})(ix|iv|v?i{0,3})$`)
	ordinalPattern = regexp.MustCompile(`^(\d+)(st|nd|rd|th)$`)
)

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// numberWords covers the spelled-out numbers that actually occur in edition
// and volume statements. Larger values are left alone.
var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	"eleven": "11", "twelve": "12", "thirteen": "13", "fourteen": "14",
	"fifteen": "15", "sixteen": "16", "seventeen": "17", "eighteen": "18",
	"nineteen": "19", "twenty": "20",
	"first": "1", "second": "2", "third": "3", "fourth": "4", "fifth": "5",
	"sixth": "6", "seventh": "7", "eighth": "8", "ninth": "9", "tenth": "10",
}

// NormalizeNumbers rewrites Roman numerals, ordinal suffixes, and spelled-out
// numbers to plain digits so "Vol. XIV" and "Volume 14" compare equal.
// Standalone "i" is left alone in English text (it is almost always the
// pronoun, not the numeral).
func NormalizeNumbers(text, language string) string {
	if text == "" {
		return text
	}
	words := strings.Fields(text)
	for i, word := range words {
		clean := strings.TrimRight(word, ".,;:!?")
		if clean == "" {
			continue
		}
		trailing := word[len(clean):]
		lower := strings.ToLower(clean)

		if replacement, ok := numberWords[lower]; ok {
			words[i] = replacement + trailing
			continue
		}
		if m := ordinalPattern.FindStringSubmatch(lower); m != nil {
			words[i] = m[1] + trailing
			continue
		}
		if lower == "i" && language == "eng" {
			continue
		}
		if value, ok := romanToInt(lower); ok {
			words[i] = strconv.Itoa(value) + trailing
		}
	}
	return strings.Join(words, " ")
}

func romanToInt(word string) (int, bool) {
	if word == "" || !romanPattern.MatchString(word) {
		return 0, false
	}
	total := 0
	for i := 0; i < len(word); i++ {
		value := romanValues[word[i]]
		if i+1 < len(word) && value < romanValues[word[i+1]] {
			total -= value
		} else {
			total += value
		}
	}
	if total == 0 {
		return 0, false
	}
	return total, true
}
