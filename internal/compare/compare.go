// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare is the entry point of the comparison engine. It routes a
// file pair to the structured or generic scorer by the first file's
// extension, runs manipulation detection and classification, and
// assembles the result handed to renderers and exporters.
//
// A Comparator holds only immutable configuration, so one instance may be
// shared by any number of goroutines.
package compare

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/swcompare/internal/classify"
	"github.com/pdiddy/swcompare/internal/logging"
	"github.com/pdiddy/swcompare/internal/manipulation"
	"github.com/pdiddy/swcompare/internal/score"
	"github.com/pdiddy/swcompare/pkg/types"
)

const (
	// metadataCap bounds the size signal's share of a SolidWorks total.
	metadataCap = 30

	weightStructuredScore = 0.8
	weightMetadata        = 0.2

	weightGeneralSize = 0.7
	weightGeneralTime = 0.3
)

// ErrEmptyPath is reported when either path of a pair is empty.
var ErrEmptyPath = errors.New("empty file path")

// Comparator compares file pairs.
type Comparator struct {
	solidWorks *score.SolidWorks
	general    *score.General
	logger     *slog.Logger
}

// New returns a Comparator using cfg's thresholds. A nil logger discards
// output.
func New(cfg types.CompareConfig, logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Comparator{
		solidWorks: score.NewSolidWorks(cfg),
		general:    score.NewGeneral(),
		logger:     logger,
	}
}

var defaultComparator = New(types.DefaultCompareConfig(), nil)

// CompareFiles compares two files with the default thresholds.
func CompareFiles(path1, path2 string) types.ComparisonResult {
	return defaultComparator.CompareFiles(path1, path2)
}

// CompareFiles compares path1 with path2. It never fails: scorer
// failures fall back to their zero scores and set Degraded, and anything
// that aborts the pipeline yields a result with CategoryError.
func (c *Comparator) CompareFiles(path1, path2 string) (result types.ComparisonResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("comparison aborted: %v", r)
			c.logger.Error("comparison failed", "file1", path1, "file2", path2, "error", err)
			result = ErrorResult(path1, path2, err)
		}
	}()

	if path1 == "" || path2 == "" {
		return ErrorResult(path1, path2, ErrEmptyPath)
	}

	var sig manipulation.Signals
	kind := KindOf(path1)
	switch kind {
	case types.KindSolidWorks:
		result, sig = c.compareSolidWorks(path1, path2)
	default:
		result, sig = c.compareGeneral(path1, path2)
	}

	m, err := manipulation.Detect(path1, path2, sig)
	if err != nil {
		c.degraded("manipulation", path1, path2, err)
		result.Degraded = true
	}
	result.Manipulation = m
	result.Category = classify.Classify(result.Total, result.Match, kind)

	c.logger.Debug("compared",
		"file1", path1, "file2", path2, "kind", kind,
		"total", result.Total, "category", result.Category,
		"manipulation", m.Kind)
	return result
}

func (c *Comparator) compareSolidWorks(path1, path2 string) (types.ComparisonResult, manipulation.Signals) {
	sw, err := c.solidWorks.Compare(path1, path2)
	if err != nil {
		c.degraded("solidworks", path1, path2, err)
	}

	featureTree := sw.Details[types.RegionFeatureTree]
	geometry := sw.Details[types.RegionGeometry]
	metadataScore := min(sw.SizeSimilarity, metadataCap)

	result := types.ComparisonResult{
		File1:     path1,
		File2:     path2,
		Total:     sw.Score*weightStructuredScore + metadataScore*weightMetadata,
		FileKind:  types.KindSolidWorks,
		Match:     sw.Match,
		Metadata:  sw.SizeSimilarity,
		Hash:      hashScore(sw.Match),
		Content:   geometry,
		Structure: featureTree,
		Details: map[string]float64{
			types.RegionFeatureTree: featureTree,
			types.RegionSketchData:  sw.Details[types.RegionSketchData],
			types.RegionGeometry:    geometry,
		},
		Degraded: err != nil,
	}
	sig := manipulation.Signals{
		Metadata:  sw.SizeSimilarity,
		Hash:      result.Hash,
		Semantic:  geometry,
		Structure: featureTree,
	}
	return result, sig
}

func (c *Comparator) compareGeneral(path1, path2 string) (types.ComparisonResult, manipulation.Signals) {
	gs, err := c.general.Compare(path1, path2)
	if err != nil {
		c.degraded("general", path1, path2, err)
	}

	result := types.ComparisonResult{
		File1:    path1,
		File2:    path2,
		Total:    gs.Score,
		FileKind: types.KindGeneral,
		Match:    gs.Match,
		Metadata: gs.SizeSimilarity*weightGeneralSize + gs.TimeSimilarity*weightGeneralTime,
		Hash:     hashScore(gs.Match),
		Content:  gs.ContentSimilarity,
		Details: map[string]float64{
			"size_similarity":    gs.SizeSimilarity,
			"time_similarity":    gs.TimeSimilarity,
			"content_similarity": gs.ContentSimilarity,
		},
		Degraded: err != nil,
	}
	sig := manipulation.Signals{
		Metadata: gs.SizeSimilarity,
		Hash:     result.Hash,
		Semantic: gs.ContentSimilarity,
	}
	return result, sig
}

func (c *Comparator) degraded(stage, path1, path2 string, err error) {
	c.logger.Warn("using fallback score", "stage", stage, "file1", path1, "file2", path2, "error", err)
}

func hashScore(match bool) float64 {
	if match {
		return 100
	}
	return 0
}

// ErrorResult is the zeroed result reported for a pair whose comparison
// could not run.
func ErrorResult(path1, path2 string, err error) types.ComparisonResult {
	return types.ComparisonResult{
		File1:        path1,
		File2:        path2,
		Category:     types.CategoryError,
		FileKind:     types.KindUnknown,
		Manipulation: manipulation.None(),
		Error:        err.Error(),
	}
}
