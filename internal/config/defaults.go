package config

const (
	defaultWorkDir  = "~/.local/share/marcpd/work"
	defaultCacheDir = "~/.local/share/marcpd/cache"
	defaultLogDir   = "~/.local/share/marcpd/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultTitleThreshold       = 40
	defaultAuthorThreshold      = 30
	defaultPublisherThreshold   = 60
	defaultEarlyExitTitle       = 95
	defaultEarlyExitAuthor      = 90
	defaultEarlyExitPublisher   = 85
	defaultYearTolerance        = 1
	defaultMinimumCombinedScore = 40

	defaultGenericTitlePenalty = 0.8
	defaultLCCNBoost           = 20.0

	defaultRedistributeTitleFloor     = 70.0
	defaultAuthorMissingTitleShare    = 0.6
	defaultPublisherMissingTitleShare = 0.7

	defaultWeakTitleFloor       = 30.0
	defaultWeakTitleCeiling     = 50.0
	defaultWeakSupportMax       = 10.0
	defaultWeakTitleCap         = 25.0
	defaultHighFieldBar         = 80.0
	defaultVeryLowTitleBar      = 20.0
	defaultAuthorOnlyPenalty    = 0.3
	defaultPublisherOnlyPenalty = 0.5

	defaultBatchSize    = 500
	defaultBatchTimeout = 900

	defaultDetectorFrequencyThreshold = 10
	defaultDetectorCacheSize          = 1000
	defaultDetectorMaxTitleCounts     = 50000

	defaultLanguageCode = "eng"

	// IndexStrategyShared shares one read-only index across all workers.
	IndexStrategyShared = "shared"
	// IndexStrategyPerWorker has every worker load its own index from the
	// candidate cache.
	IndexStrategyPerWorker = "per-worker"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Matching: Matching{
			TitleThreshold:       defaultTitleThreshold,
			AuthorThreshold:      defaultAuthorThreshold,
			PublisherThreshold:   defaultPublisherThreshold,
			EarlyExitTitle:       defaultEarlyExitTitle,
			EarlyExitAuthor:      defaultEarlyExitAuthor,
			EarlyExitPublisher:   defaultEarlyExitPublisher,
			YearTolerance:        defaultYearTolerance,
			MinimumCombinedScore: defaultMinimumCombinedScore,
		},
		Scoring: Scoring{
			NormalWithPublisher:  WeightTriple{Title: 0.6, Author: 0.25, Publisher: 0.15},
			GenericWithPublisher: WeightTriple{Title: 0.3, Author: 0.45, Publisher: 0.25},
			NormalNoPublisher:    WeightTriple{Title: 0.7, Author: 0.3},
			GenericNoPublisher:   WeightTriple{Title: 0.4, Author: 0.6},

			GenericTitlePenalty: defaultGenericTitlePenalty,
			LCCNBoost:           defaultLCCNBoost,

			RedistributeTitleFloor:     defaultRedistributeTitleFloor,
			AuthorMissingTitleShare:    defaultAuthorMissingTitleShare,
			PublisherMissingTitleShare: defaultPublisherMissingTitleShare,

			WeakTitleFloor:       defaultWeakTitleFloor,
			WeakTitleCeiling:     defaultWeakTitleCeiling,
			WeakSupportMax:       defaultWeakSupportMax,
			WeakTitleCap:         defaultWeakTitleCap,
			HighFieldBar:         defaultHighFieldBar,
			VeryLowTitleBar:      defaultVeryLowTitleBar,
			AuthorOnlyPenalty:    defaultAuthorOnlyPenalty,
			PublisherOnlyPenalty: defaultPublisherOnlyPenalty,
		},
		Processing: Processing{
			BatchSize:     defaultBatchSize,
			Workers:       0, // 0 means runtime.NumCPU at pool start
			BatchTimeout:  defaultBatchTimeout,
			IndexStrategy: IndexStrategyShared,
		},
		Detector: Detector{
			FrequencyThreshold: defaultDetectorFrequencyThreshold,
			CacheSize:          defaultDetectorCacheSize,
			MaxTitleCounts:     defaultDetectorMaxTitleCounts,
		},
		Similarity: Similarity{
			EnableStemming:      true,
			ExpandAbbreviations: true,
			DefaultLanguage:     defaultLanguageCode,
		},
	}
}
