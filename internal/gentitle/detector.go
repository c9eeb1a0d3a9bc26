// Package gentitle flags titles too common to carry matching signal on
// their own ("Annual report", "Collected poems"). Detection combines a
// fixed pattern list with corpus frequency tracking; results feed the
// generic-title scoring scenario in the match combiner.
package gentitle

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"marcpd/internal/textnorm"
)

// genericPatterns are titles that are generic wherever they appear.
var genericPatterns = map[string]struct{}{
	"collected works": {}, "complete works": {}, "selected works": {}, "works": {},
	"collected writings": {}, "complete writings": {}, "selected writings": {},
	"collected papers": {}, "selected papers": {}, "papers": {},
	"poems": {}, "poetry": {}, "selected poems": {}, "complete poems": {}, "collected poems": {},
	"essays": {}, "selected essays": {}, "complete essays": {}, "collected essays": {},
	"stories": {}, "short stories": {}, "selected stories": {}, "collected stories": {},
	"plays": {}, "dramas": {}, "selected plays": {}, "complete plays": {}, "collected plays": {},
	"letters": {}, "correspondence": {}, "selected letters": {}, "collected letters": {},
	"speeches": {}, "addresses": {}, "selected speeches": {}, "collected speeches": {},
	"novels": {}, "selected novels": {}, "collected novels": {},
	"anthology": {}, "collection": {}, "selections": {}, "miscellany": {},
	"writings": {}, "documents": {}, "memoirs": {}, "autobiography": {},
	"biography": {}, "journal": {}, "diary": {}, "notebook": {},
	"proceedings": {}, "transactions": {}, "bulletin": {},
	"report": {}, "reports": {}, "annual report": {}, "studies": {},
	"articles": {}, "records": {},
}

// Options configures detector behavior.
type Options struct {
	// FrequencyThreshold is the number of corpus occurrences at which a
	// title counts as generic even without a pattern hit.
	FrequencyThreshold int
	// CacheSize bounds the detection-result cache.
	CacheSize int
	// MaxTitleCounts bounds the frequency table; when exceeded,
	// single-occurrence entries are evicted.
	MaxTitleCounts int
	// ExtraPatterns extends the built-in pattern list.
	ExtraPatterns []string
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{
		FrequencyThreshold: 10,
		CacheSize:          1000,
		MaxTitleCounts:     50000,
	}
}

// Detector decides whether a title is generic. It is safe for concurrent
// readers once corpus registration (AddTitle) has finished; the matching
// run treats it as read-only.
type Detector struct {
	opts     Options
	patterns map[string]struct{}

	mu     sync.RWMutex
	counts map[string]int
	cache  *lru.Cache[string, bool]
}

// NewDetector builds a detector with the given options.
func NewDetector(opts Options) *Detector {
	if opts.FrequencyThreshold <= 0 {
		opts.FrequencyThreshold = 10
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1000
	}
	if opts.MaxTitleCounts <= 0 {
		opts.MaxTitleCounts = 50000
	}
	patterns := make(map[string]struct{}, len(genericPatterns)+len(opts.ExtraPatterns))
	for p := range genericPatterns {
		patterns[p] = struct{}{}
	}
	for _, p := range opts.ExtraPatterns {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			patterns[p] = struct{}{}
		}
	}
	cache, _ := lru.New[string, bool](opts.CacheSize)
	return &Detector{
		opts:     opts,
		patterns: patterns,
		counts:   make(map[string]int),
		cache:    cache,
	}
}

// AddTitle registers a corpus title for frequency tracking. Call during
// index construction, before matching starts.
func (d *Detector) AddTitle(title string) {
	normalized := textnorm.Clean(title)
	if normalized == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[normalized]++
	if len(d.counts) > d.opts.MaxTitleCounts {
		for key, n := range d.counts {
			if n <= 1 {
				delete(d.counts, key)
			}
		}
	}
}

// IsGeneric reports whether the title is too common to be distinctive.
// Detection applies to English titles only; other languages always return
// false.
func (d *Detector) IsGeneric(title, language string) bool {
	if title == "" || !isEnglish(language) {
		return false
	}
	normalized := textnorm.Clean(title)
	if normalized == "" {
		return false
	}

	cacheKey := normalized + "|" + language
	if cached, ok := d.cache.Get(cacheKey); ok {
		return cached
	}

	generic := d.patternMatch(normalized) || d.frequencyMatch(normalized)
	d.cache.Add(cacheKey, generic)
	return generic
}

// DetectionReason explains why a title was (or was not) flagged.
func (d *Detector) DetectionReason(title, language string) string {
	if title == "" {
		return "empty"
	}
	if !isEnglish(language) {
		return "skipped_non_english_" + language
	}
	normalized := textnorm.Clean(title)
	switch {
	case normalized == "":
		return "empty"
	case d.patternMatch(normalized):
		return "pattern"
	case d.frequencyMatch(normalized):
		return "frequency"
	default:
		return "none"
	}
}

func (d *Detector) patternMatch(normalized string) bool {
	if _, ok := d.patterns[normalized]; ok {
		return true
	}
	// A title that opens with a pattern phrase and adds only an ordinal or
	// year is still generic ("annual report 1947").
	for pattern := range d.patterns {
		if strings.HasPrefix(normalized, pattern+" ") {
			rest := strings.TrimPrefix(normalized, pattern+" ")
			if len(strings.Fields(rest)) <= 2 && restIsNumericish(rest) {
				return true
			}
		}
	}
	return false
}

func (d *Detector) frequencyMatch(normalized string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.counts[normalized] >= d.opts.FrequencyThreshold
}

func restIsNumericish(rest string) bool {
	for _, word := range strings.Fields(rest) {
		hasDigit := false
		for _, r := range word {
			if r >= '0' && r <= '9' {
				hasDigit = true
				break
			}
		}
		if !hasDigit {
			return false
		}
	}
	return true
}

func isEnglish(language string) bool {
	return language == "" || strings.EqualFold(language, "eng")
}
