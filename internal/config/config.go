package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Pipeline holds the reconciliation thresholds. These values are product
// policy rather than physics; tests probe boundary behavior by injecting
// other values.
type Pipeline struct {
	// MinMatchRatio is the alignment confidence below which a free-text
	// proposal is considered unreliable.
	MinMatchRatio float64 `toml:"min_match_ratio"`
	// StrictCoverage is the per-sentence retention fraction at which the
	// whole sentence is kept in the strict set.
	StrictCoverage float64 `toml:"strict_coverage"`
	// SentenceGapSeconds is the inter-word silence that closes a sentence
	// even without terminal punctuation.
	SentenceGapSeconds float64 `toml:"sentence_gap_seconds"`
	// StrictMinWords and StrictMinFraction guard against over-aggressive
	// strict filtering: when the strict set covers fewer than
	// max(StrictMinWords, StrictMinFraction * retained) words, the loose
	// set is preferred.
	StrictMinWords    int     `toml:"strict_min_words"`
	StrictMinFraction float64 `toml:"strict_min_fraction"`
}

// Worker holds batch-processing knobs.
type Worker struct {
	MaxConcurrentJobs int `toml:"max_concurrent_jobs"`
	// RateLimitPerMin caps how many jobs start per minute; 0 disables the
	// limiter.
	RateLimitPerMin int `toml:"rate_limit_per_min"`
}

// Config is the full application configuration.
type Config struct {
	Pipeline Pipeline `toml:"pipeline"`
	Worker   Worker   `toml:"worker"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pipeline: Pipeline{
			MinMatchRatio:      0.65,
			StrictCoverage:     0.6,
			SentenceGapSeconds: 0.8,
			StrictMinWords:     5,
			StrictMinFraction:  0.6,
		},
		Worker: Worker{
			MaxConcurrentJobs: 3,
			RateLimitPerMin:   0,
		},
	}
}

// Load reads a TOML config file on top of the defaults and validates the
// result. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values outside their meaningful domain.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.MinMatchRatio < 0 || p.MinMatchRatio > 1 {
		return fmt.Errorf("pipeline.min_match_ratio must be in [0,1], got %g", p.MinMatchRatio)
	}
	if p.StrictCoverage <= 0 || p.StrictCoverage > 1 {
		return fmt.Errorf("pipeline.strict_coverage must be in (0,1], got %g", p.StrictCoverage)
	}
	if p.SentenceGapSeconds <= 0 {
		return fmt.Errorf("pipeline.sentence_gap_seconds must be positive, got %g", p.SentenceGapSeconds)
	}
	if p.StrictMinWords < 0 {
		return fmt.Errorf("pipeline.strict_min_words must not be negative, got %d", p.StrictMinWords)
	}
	if p.StrictMinFraction < 0 || p.StrictMinFraction > 1 {
		return fmt.Errorf("pipeline.strict_min_fraction must be in [0,1], got %g", p.StrictMinFraction)
	}
	if c.Worker.MaxConcurrentJobs < 1 {
		return fmt.Errorf("worker.max_concurrent_jobs must be at least 1, got %d", c.Worker.MaxConcurrentJobs)
	}
	if c.Worker.RateLimitPerMin < 0 {
		return fmt.Errorf("worker.rate_limit_per_min must not be negative, got %d", c.Worker.RateLimitPerMin)
	}
	return nil
}
