// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is the human-facing label assigned to a scored pair.
type Category string

const (
	CategoryExactMatch   Category = "Exact Match"
	CategorySaveAsCopy   Category = "Save-As Copy"
	CategoryMinorChanges Category = "Minor Changes"
	CategoryMajorChanges Category = "Major Changes"

	CategoryNearlyIdentical Category = "Nearly Identical"
	CategoryVerySimilar     Category = "Very Similar"
	CategoryModerate        Category = "Moderate Similarity"
	CategoryWeak            Category = "Weak Similarity"

	CategoryDifferent Category = "Different Files"
	CategoryError     Category = "Error"
)

// Region names used as keys for sub-scores and raw window comparisons.
const (
	RegionFeatureTree = "feature_tree"
	RegionSketchData  = "sketch_data"
	RegionGeometry    = "geometry"
)

// SolidWorksScore is the output of the structured scorer.
type SolidWorksScore struct {
	Score float64 `json:"score" yaml:"score"`

	// Details maps feature_tree, sketch_data, and geometry to their
	// sub-scores. Empty when the scorer failed.
	Details map[string]float64 `json:"details" yaml:"details"`

	// RawComparisons maps each raw region to its byte-window similarity.
	// Nil on the fast path.
	RawComparisons map[string]float64 `json:"raw_comparisons,omitempty" yaml:"raw_comparisons,omitempty"`

	SizeSimilarity float64  `json:"size_similarity" yaml:"size_similarity"`
	Match          bool     `json:"match" yaml:"match"`
	Kind           FileKind `json:"kind" yaml:"kind"`

	// FastPath is set when the feature-tree windows were near-identical
	// and the full analysis was skipped.
	FastPath bool `json:"fast_path,omitempty" yaml:"fast_path,omitempty"`

	// Degraded is set when either file's structure could not be extracted
	// and empty structures were scored in its place.
	Degraded bool `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// GeneralScore is the output of the generic scorer.
type GeneralScore struct {
	Score             float64  `json:"score" yaml:"score"`
	SizeSimilarity    float64  `json:"size_similarity" yaml:"size_similarity"`
	TimeSimilarity    float64  `json:"time_similarity" yaml:"time_similarity"`
	ContentSimilarity float64  `json:"content_similarity" yaml:"content_similarity"`
	Match             bool     `json:"match" yaml:"match"`
	Kind              FileKind `json:"kind" yaml:"kind"`
}

// ManipulationKind classifies a suspected alteration.
type ManipulationKind string

const (
	ManipulationNone             ManipulationKind = "none"
	ManipulationContentInjection ManipulationKind = "content_injection"
	ManipulationQuickEdit        ManipulationKind = "quick_edit"
	ManipulationRename           ManipulationKind = "rename"
	ManipulationUnknown          ManipulationKind = "unknown"
)

// Indicator keys reported in ManipulationResult.Indicators.
const (
	IndicatorSizeRatio        = "size_ratio"
	IndicatorTimeProximity    = "time_proximity"
	IndicatorContentInjection = "content_injection"
	IndicatorRenamePattern    = "rename_pattern"
)

// ManipulationResult is the detector's verdict for a pair.
type ManipulationResult struct {
	Detected   bool               `json:"detected" yaml:"detected"`
	Score      float64            `json:"score" yaml:"score"`
	Kind       ManipulationKind   `json:"kind" yaml:"kind"`
	Indicators map[string]float64 `json:"indicators" yaml:"indicators"`
}

// ComparisonResult is the structure handed to renderers and exporters.
type ComparisonResult struct {
	File1        string             `json:"file1" yaml:"file1"`
	File2        string             `json:"file2" yaml:"file2"`
	Total        float64            `json:"total" yaml:"total"`
	Category     Category           `json:"category" yaml:"category"`
	FileKind     FileKind           `json:"file_kind" yaml:"file_kind"`
	Match        bool               `json:"match" yaml:"match"`
	Manipulation ManipulationResult `json:"manipulation" yaml:"manipulation"`
	Metadata     float64            `json:"metadata" yaml:"metadata"`
	Hash         float64            `json:"hash" yaml:"hash"`
	Content      float64            `json:"content" yaml:"content"`
	Structure    float64            `json:"structure" yaml:"structure"`
	Details      map[string]float64 `json:"details,omitempty" yaml:"details,omitempty"`

	// Degraded is set when a scorer or the detector failed and its
	// fallback value was used.
	Degraded bool `json:"degraded,omitempty" yaml:"degraded,omitempty"`

	// Error is set only when Category is CategoryError.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
