package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. A config that fails
// validation aborts the run before any work is dispatched.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.CacheDir == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	checks := []struct {
		name  string
		value int
	}{
		{"matching.title_threshold", c.Matching.TitleThreshold},
		{"matching.author_threshold", c.Matching.AuthorThreshold},
		{"matching.publisher_threshold", c.Matching.PublisherThreshold},
		{"matching.early_exit_title", c.Matching.EarlyExitTitle},
		{"matching.early_exit_author", c.Matching.EarlyExitAuthor},
		{"matching.early_exit_publisher", c.Matching.EarlyExitPublisher},
		{"matching.minimum_combined_score", c.Matching.MinimumCombinedScore},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %d", check.name, check.value)
		}
	}
	if c.Matching.YearTolerance < 0 || c.Matching.YearTolerance > 10 {
		return fmt.Errorf("matching.year_tolerance must be between 0 and 10, got %d", c.Matching.YearTolerance)
	}
	return nil
}

func (c *Config) validateScoring() error {
	triples := []struct {
		name   string
		triple WeightTriple
	}{
		{"scoring.normal_with_publisher", c.Scoring.NormalWithPublisher},
		{"scoring.generic_with_publisher", c.Scoring.GenericWithPublisher},
		{"scoring.normal_no_publisher", c.Scoring.NormalNoPublisher},
		{"scoring.generic_no_publisher", c.Scoring.GenericNoPublisher},
	}
	for _, entry := range triples {
		total := entry.triple.Title + entry.triple.Author + entry.triple.Publisher
		if total <= 0 {
			return fmt.Errorf("%s weights must sum to a positive value", entry.name)
		}
		if entry.triple.Title < 0 || entry.triple.Author < 0 || entry.triple.Publisher < 0 {
			return fmt.Errorf("%s weights must not be negative", entry.name)
		}
	}
	if c.Scoring.GenericTitlePenalty <= 0 || c.Scoring.GenericTitlePenalty > 1 {
		return errors.New("scoring.generic_title_penalty must be in (0, 1]")
	}
	if c.Scoring.LCCNBoost < 0 || c.Scoring.LCCNBoost > 100 {
		return errors.New("scoring.lccn_boost must be between 0 and 100")
	}
	for _, penalty := range []struct {
		name  string
		value float64
	}{
		{"scoring.author_only_penalty", c.Scoring.AuthorOnlyPenalty},
		{"scoring.publisher_only_penalty", c.Scoring.PublisherOnlyPenalty},
	} {
		if penalty.value <= 0 || penalty.value > 1 {
			return fmt.Errorf("%s must be in (0, 1]", penalty.name)
		}
	}
	for _, share := range []struct {
		name  string
		value float64
	}{
		{"scoring.author_missing_title_share", c.Scoring.AuthorMissingTitleShare},
		{"scoring.publisher_missing_title_share", c.Scoring.PublisherMissingTitleShare},
	} {
		if share.value <= 0 || share.value >= 1 {
			return fmt.Errorf("%s must be in (0, 1)", share.name)
		}
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.BatchSize <= 0 {
		return errors.New("processing.batch_size must be positive")
	}
	if c.Processing.Workers < 0 {
		return errors.New("processing.workers must not be negative")
	}
	if c.Processing.BatchTimeout <= 0 {
		return errors.New("processing.batch_timeout must be positive")
	}
	if c.Processing.RecycleAfterBatches < -1 {
		return errors.New("processing.recycle_after_batches must be -1 (off), 0 (auto), or positive")
	}
	switch c.Processing.IndexStrategy {
	case IndexStrategyShared, IndexStrategyPerWorker:
	default:
		return fmt.Errorf("processing.index_strategy must be %q or %q, got %q",
			IndexStrategyShared, IndexStrategyPerWorker, c.Processing.IndexStrategy)
	}
	return nil
}
