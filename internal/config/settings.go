package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/playlist-spreader/internal/grouping"
	"github.com/handiism/playlist-spreader/internal/playlist"
	"github.com/handiism/playlist-spreader/internal/shuffle"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is returned by Validate. The wrapping error
// names the offending option.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Settings holds all configuration options.
type Settings struct {
	// Shuffle settings
	MinDistance int    `json:"min_distance" yaml:"min_distance"`
	Count       int    `json:"count" yaml:"count"` // 0 = input length
	Seed        *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	PassThrough bool   `json:"pass_through" yaml:"pass_through"`

	// Distribution report
	DistributionReport   string `json:"distribution_report" yaml:"distribution_report"`
	SuppressDistribution bool   `json:"suppress_distribution" yaml:"suppress_distribution"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`
	ReadTags       bool   `json:"read_tags" yaml:"read_tags"`

	// Group report
	MaxReportExamples int     `json:"max_report_examples" yaml:"max_report_examples"`
	VariantThreshold  float64 `json:"variant_threshold" yaml:"variant_threshold"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		MinDistance: shuffle.DefaultMinDistance,

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		MaxReportExamples: grouping.DefaultMaxExamples,
		VariantThreshold:  grouping.DefaultVariantThreshold,
	}
}

// Load reads settings from a JSON or YAML file, chosen by extension
// (.yaml and .yml are YAML, anything else JSON). Options missing from the
// file keep their defaults; a missing file yields DefaultSettings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate rejects option combinations that cannot be run. It is called
// before any input is read.
func (s *Settings) Validate() error {
	if s.MinDistance < 0 {
		return invalid("min distance must not be negative, got %d", s.MinDistance)
	}
	if s.Count < 0 {
		return invalid("count must be positive, got %d", s.Count)
	}
	if s.PassThrough {
		switch {
		case s.Seed != nil:
			return invalid("pass-through cannot be combined with a seed")
		case s.DistributionReport != "":
			return invalid("pass-through cannot be combined with a distribution report")
		case s.SuppressDistribution:
			return invalid("pass-through cannot be combined with suppress-distribution")
		}
	}
	if s.SuppressDistribution && s.DistributionReport == "" {
		return invalid("suppress-distribution requires a distribution report path")
	}
	if _, ok := playlist.ParseFormat(s.PlaylistFormat); !ok {
		return invalid("unknown playlist format %q", s.PlaylistFormat)
	}
	if s.MaxReportExamples < 0 {
		return invalid("max report examples must not be negative, got %d", s.MaxReportExamples)
	}
	if s.VariantThreshold < 0 || s.VariantThreshold > 1 {
		return invalid("variant threshold must be within [0, 1], got %g", s.VariantThreshold)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Format returns the playlist format. Unknown values fall back to M3U;
// Validate reports them.
func (s *Settings) Format() playlist.Format {
	f, _ := playlist.ParseFormat(s.PlaylistFormat)
	return f
}
