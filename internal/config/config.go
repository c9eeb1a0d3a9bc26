package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Matching contains the per-field thresholds and filters applied while
// scanning candidates.
type Matching struct {
	TitleThreshold        int  `toml:"title_threshold"`
	AuthorThreshold       int  `toml:"author_threshold"`
	PublisherThreshold    int  `toml:"publisher_threshold"`
	EarlyExitTitle        int  `toml:"early_exit_title"`
	EarlyExitAuthor       int  `toml:"early_exit_author"`
	EarlyExitPublisher    int  `toml:"early_exit_publisher"`
	YearTolerance         int  `toml:"year_tolerance"`
	MinimumCombinedScore  int  `toml:"minimum_combined_score"`
	ScoreEverything       bool `toml:"score_everything"`
	BruteForceMissingYear bool `toml:"brute_force_missing_year"`
}

// WeightTriple is one scenario's field weighting. Weights are normalized
// before use, so they need not sum to exactly 1.
type WeightTriple struct {
	Title     float64 `toml:"title"`
	Author    float64 `toml:"author"`
	Publisher float64 `toml:"publisher"`
}

// Scoring contains the score-combination constants: scenario weights,
// penalties, guards, and the LCCN boost. These are empirically tuned
// defaults, kept as configuration so they can be recalibrated against a
// regression fixture without code changes.
type Scoring struct {
	NormalWithPublisher  WeightTriple `toml:"normal_with_publisher"`
	GenericWithPublisher WeightTriple `toml:"generic_with_publisher"`
	NormalNoPublisher    WeightTriple `toml:"normal_no_publisher"`
	GenericNoPublisher   WeightTriple `toml:"generic_no_publisher"`

	GenericTitlePenalty float64 `toml:"generic_title_penalty"`
	LCCNBoost           float64 `toml:"lccn_boost"`

	// Missing-field redistribution: active when exactly one of
	// author/publisher is absent and the title score clears the floor.
	RedistributeTitleFloor     float64 `toml:"redistribute_title_floor"`
	AuthorMissingTitleShare    float64 `toml:"author_missing_title_share"`
	PublisherMissingTitleShare float64 `toml:"publisher_missing_title_share"`

	// Multi-field validation guards (skipped on LCCN matches).
	WeakTitleFloor       float64 `toml:"weak_title_floor"`
	WeakTitleCeiling     float64 `toml:"weak_title_ceiling"`
	WeakSupportMax       float64 `toml:"weak_support_max"`
	WeakTitleCap         float64 `toml:"weak_title_cap"`
	HighFieldBar         float64 `toml:"high_field_bar"`
	VeryLowTitleBar      float64 `toml:"very_low_title_bar"`
	AuthorOnlyPenalty    float64 `toml:"author_only_penalty"`
	PublisherOnlyPenalty float64 `toml:"publisher_only_penalty"`
}

// Processing contains batch pipeline settings.
type Processing struct {
	BatchSize int `toml:"batch_size"`
	Workers   int `toml:"workers"`
	// BatchTimeout is the per-batch hard timeout in seconds.
	BatchTimeout int `toml:"batch_timeout"`
	// RecycleAfterBatches forces a worker context rebuild after this many
	// batches; 0 computes a cadence from the job size, -1 disables.
	RecycleAfterBatches int `toml:"recycle_after_batches"`
	// IndexStrategy is "shared" (one index shared read-only across
	// workers) or "per-worker" (each worker loads its own from the cache).
	IndexStrategy string `toml:"index_strategy"`
}

// Detector contains generic-title detection settings.
type Detector struct {
	FrequencyThreshold int `toml:"frequency_threshold"`
	CacheSize          int `toml:"cache_size"`
	MaxTitleCounts     int `toml:"max_title_counts"`
}

// Similarity contains text normalization toggles.
type Similarity struct {
	EnableStemming      bool   `toml:"enable_stemming"`
	ExpandAbbreviations bool   `toml:"expand_abbreviations"`
	DefaultLanguage     string `toml:"default_language"`
}

// Config encapsulates all configuration values for marcpd.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	Matching   Matching   `toml:"matching"`
	Scoring    Scoring    `toml:"scoring"`
	Processing Processing `toml:"processing"`
	Detector   Detector   `toml:"detector"`
	Similarity Similarity `toml:"similarity"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/marcpd/config.toml")
}

// SampleConfig returns the embedded sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

func (c *Config) expandPaths() error {
	var err error
	if c.Paths.WorkDir, err = ExpandPath(c.Paths.WorkDir); err != nil {
		return err
	}
	if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return err
	}
	return nil
}

// EnsureDirectories creates the work, cache, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.CacheDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory and returns
// an absolute, cleaned path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// WeightsFor returns the scenario weight triple for the given generic-title
// and publisher-presence flags.
func (s *Scoring) WeightsFor(generic, hasPublisher bool) WeightTriple {
	switch {
	case generic && hasPublisher:
		return s.GenericWithPublisher
	case generic:
		return s.GenericNoPublisher
	case hasPublisher:
		return s.NormalWithPublisher
	default:
		return s.NormalNoPublisher
	}
}
