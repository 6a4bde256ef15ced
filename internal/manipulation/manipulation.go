// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manipulation estimates whether one file of a pair is an altered
// copy of the other. It combines size ratio, modification time proximity,
// the gap between semantic similarity and exact-hash equality, and file
// name similarity into a risk score.
package manipulation

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pdiddy/swcompare/internal/seqmatch"
	"github.com/pdiddy/swcompare/pkg/types"
)

const (
	secondsPerDay = 86400

	weightSize      = 0.2
	weightTime      = 0.3
	weightInjection = 0.3
	weightRename    = 0.2

	// detectThreshold is the weighted score above which a pair is flagged.
	detectThreshold = 0.7

	injectionThreshold = 0.5
	quickEditThreshold = 0.8
	renameThreshold    = 0.7
)

// Signals are the upstream sub-scores the detector consumes, each in
// [0, 100].
type Signals struct {
	// Metadata is the size-based metadata score. It is carried for
	// reporting and does not enter the risk score.
	Metadata float64

	// Hash is 100 when the pair matched exactly, else 0.
	Hash float64

	// Semantic is content similarity for generic files and geometry
	// similarity for SolidWorks files.
	Semantic float64

	// Structure is feature-tree similarity for SolidWorks files, else 0.
	Structure float64
}

// Detect computes the manipulation verdict for a pair. On failure it
// returns None() with the error.
func Detect(path1, path2 string, sig Signals) (types.ManipulationResult, error) {
	st1, err := os.Stat(path1)
	if err != nil {
		return None(), fmt.Errorf("stat %s: %w", path1, err)
	}
	st2, err := os.Stat(path2)
	if err != nil {
		return None(), fmt.Errorf("stat %s: %w", path2, err)
	}

	var sizeRatio float64
	if hi := max(st1.Size(), st2.Size()); hi > 0 {
		sizeRatio = float64(min(st1.Size(), st2.Size())) / float64(hi)
	}

	var timeProximity float64
	if diff := math.Abs(st1.ModTime().Sub(st2.ModTime()).Seconds()); diff < secondsPerDay {
		timeProximity = 1 - diff/secondsPerDay
	}

	injection := math.Max(0, sig.Semantic-sig.Hash) / 100
	rename := seqmatch.Text(filepath.Base(path1), filepath.Base(path2))

	indicators := map[string]float64{
		types.IndicatorSizeRatio:        sizeRatio,
		types.IndicatorTimeProximity:    timeProximity,
		types.IndicatorContentInjection: injection,
		types.IndicatorRenamePattern:    rename,
	}
	return Assess(indicators), nil
}

// Assess weighs normalized indicators into a verdict. Missing indicators
// count as 0.
func Assess(indicators map[string]float64) types.ManipulationResult {
	score := indicators[types.IndicatorSizeRatio]*weightSize +
		indicators[types.IndicatorTimeProximity]*weightTime +
		indicators[types.IndicatorContentInjection]*weightInjection +
		indicators[types.IndicatorRenamePattern]*weightRename

	detected := score > detectThreshold
	kind := types.ManipulationNone
	if detected {
		switch {
		case indicators[types.IndicatorContentInjection] > injectionThreshold:
			kind = types.ManipulationContentInjection
		case indicators[types.IndicatorTimeProximity] > quickEditThreshold:
			kind = types.ManipulationQuickEdit
		case indicators[types.IndicatorRenamePattern] > renameThreshold:
			kind = types.ManipulationRename
		default:
			kind = types.ManipulationUnknown
		}
	}

	return types.ManipulationResult{
		Detected:   detected,
		Score:      score * 100,
		Kind:       kind,
		Indicators: indicators,
	}
}

// None is the verdict reported when detection fails.
func None() types.ManipulationResult {
	return types.ManipulationResult{
		Kind:       types.ManipulationNone,
		Indicators: map[string]float64{},
	}
}
