package batch

import (
	"marcpd/internal/bib"
	"marcpd/internal/config"
	"marcpd/internal/gentitle"
	"marcpd/internal/index"
	"marcpd/internal/match"
	"marcpd/internal/similarity"
)

// AssembleEngine builds a ready-to-score engine from candidate records:
// indexes both datasets, feeds the generic-title detector with every
// candidate title, and wires the similarity calculator and combiner per
// the config. renewal may be empty.
func AssembleEngine(cfg *config.Config, registration, renewal []*bib.CandidateRecord) *match.Engine {
	detector := gentitle.NewDetector(gentitle.Options{
		FrequencyThreshold: cfg.Detector.FrequencyThreshold,
		CacheSize:          cfg.Detector.CacheSize,
		MaxTitleCounts:     cfg.Detector.MaxTitleCounts,
	})
	for _, record := range registration {
		detector.AddTitle(record.Title)
	}
	for _, record := range renewal {
		detector.AddTitle(record.Title)
	}

	calc := similarity.NewCalculator(similarity.Options{
		EnableStemming:  cfg.Similarity.EnableStemming,
		ExpandAbbrevs:   cfg.Similarity.ExpandAbbreviations,
		DefaultLanguage: cfg.Similarity.DefaultLanguage,
	})
	matcher := match.NewMatcher(calc, match.NewCombiner(&cfg.Scoring), detector)

	var renewalSource match.CandidateSource
	if len(renewal) > 0 {
		renewalSource = index.Build(renewal)
	}
	return match.NewEngine(matcher, index.Build(registration), renewalSource, &cfg.Matching)
}
