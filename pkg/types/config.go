// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultFastPathThreshold is the feature-tree window similarity above
	// which two SolidWorks files are treated as identical without further
	// analysis.
	DefaultFastPathThreshold = 99.5

	// DefaultMatchThreshold is the structured score above which a
	// SolidWorks pair is reported as a match.
	DefaultMatchThreshold = 98.0
)

// CompareConfig holds the tunable thresholds of the structured scorer.
// Every other weight and window is fixed.
type CompareConfig struct {
	FastPathThreshold float64 `json:"fast_path_threshold" yaml:"fast_path_threshold" mapstructure:"fast_path_threshold"`
	MatchThreshold    float64 `json:"match_threshold" yaml:"match_threshold" mapstructure:"match_threshold"`
}

// DefaultCompareConfig returns the thresholds the scores were calibrated with.
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		FastPathThreshold: DefaultFastPathThreshold,
		MatchThreshold:    DefaultMatchThreshold,
	}
}

// WithDefaults fills zero thresholds with their defaults.
func (c CompareConfig) WithDefaults() CompareConfig {
	if c.FastPathThreshold <= 0 {
		c.FastPathThreshold = DefaultFastPathThreshold
	}
	if c.MatchThreshold <= 0 {
		c.MatchThreshold = DefaultMatchThreshold
	}
	return c
}

// OutputFormat selects how a batch report is rendered.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
	FormatHTML  OutputFormat = "html"
)

// ScanConfig holds settings for a folder batch run.
type ScanConfig struct {
	// Folder is the directory whose files are compared pairwise.
	Folder string `json:"folder" yaml:"folder" mapstructure:"folder"`

	// FileType selects the extension allow-list (default all).
	FileType FileTypeGroup `json:"file_type" yaml:"file_type" mapstructure:"file_type"`

	// MinScore drops pairs whose total is below it (default 0).
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// Workers bounds the number of concurrent comparisons (default NumCPU).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Format selects the report format (default table).
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// Config groups every configuration section read from swcompare.yaml.
type Config struct {
	Compare CompareConfig `json:"compare" yaml:"compare" mapstructure:"compare"`
	Scan    ScanConfig    `json:"scan" yaml:"scan" mapstructure:"scan"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
