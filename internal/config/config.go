// Package config holds the tunable settings of a shape census run and
// loads them from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironsheep/shape-census/internal/analysis"
	"github.com/ironsheep/shape-census/internal/detection"
	"github.com/ironsheep/shape-census/internal/imaging"
)

// Keys name the settings. They double as command-line flag names.
const (
	KeyMinArea  = "min-area"
	KeyColorTol = "color-tol"
	KeyMetric   = "metric"
	KeyRegion   = "region"
	KeyMedian   = "median"
	KeyFormat   = "format"
)

// Config holds all settings of a run.
type Config struct {
	MinArea      int     `json:"min_area"`
	ColorTol     float64 `json:"color_tol"`
	Metric       string  `json:"metric"`
	Region       string  `json:"region,omitempty"` // "x1,y1,x2,y2"; empty means whole image
	MedianRadius float64 `json:"median_radius"`
	Format       string  `json:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MinArea:  analysis.DefaultMinArea,
		ColorTol: analysis.DefaultColorTol,
		Metric:   string(detection.MetricRGB),
		Format:   analysis.FormatText,
	}
}

// Load reads a JSON config file layered over Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Override copies the settings named in set from other into c.
// Callers pass the names of flags the user gave explicitly, so flags win
// over file values while unset flags leave the file alone.
func (c *Config) Override(other Config, set map[string]bool) {
	if set[KeyMinArea] {
		c.MinArea = other.MinArea
	}
	if set[KeyColorTol] {
		c.ColorTol = other.ColorTol
	}
	if set[KeyMetric] {
		c.Metric = other.Metric
	}
	if set[KeyRegion] {
		c.Region = other.Region
	}
	if set[KeyMedian] {
		c.MedianRadius = other.MedianRadius
	}
	if set[KeyFormat] {
		c.Format = other.Format
	}
}

// Validate checks the settings that have a fixed vocabulary.
// Numeric settings are passed through unchecked.
func (c Config) Validate() error {
	if _, err := detection.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Region != "" {
		if _, err := imaging.ParseRegion(c.Region); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	switch c.Format {
	case analysis.FormatText, analysis.FormatJSON:
	default:
		return fmt.Errorf("config: unknown output format %q (want text or json)", c.Format)
	}
	return nil
}

// Options converts the settings into analysis options.
func (c Config) Options() (analysis.Options, error) {
	if err := c.Validate(); err != nil {
		return analysis.Options{}, err
	}

	metric, _ := detection.ParseMetric(c.Metric)
	opts := analysis.Options{
		MinArea:      c.MinArea,
		ColorTol:     c.ColorTol,
		Metric:       metric,
		MedianRadius: c.MedianRadius,
	}
	if c.Region != "" {
		r, _ := imaging.ParseRegion(c.Region)
		opts.Region = &r
	}
	return opts, nil
}
