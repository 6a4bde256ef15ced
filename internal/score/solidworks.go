// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes similarity scores for a pair of files: the
// structured scorer for SolidWorks-like containers and the generic scorer
// for everything else. Scorers read the files they are given and nothing
// else; they keep no state between calls.
package score

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/swcompare/internal/extract"
	"github.com/pdiddy/swcompare/internal/seqmatch"
	"github.com/pdiddy/swcompare/pkg/types"
)

// Sub-score weights. They sum to 1; metadata is weighed by the caller.
const (
	weightFeatureTree = 0.5
	weightSketchData  = 0.3
	weightGeometry    = 0.2

	weightStructured = 0.8
	weightRaw        = 0.15
	weightSize       = 0.05

	featureOrderWeight   = 0.7
	featureOverlapWeight = 0.3

	volumeWeight    = 0.6
	signatureWeight = 0.4
)

// SolidWorks scores pairs of SolidWorks-like container files.
type SolidWorks struct {
	cfg types.CompareConfig
}

// NewSolidWorks returns a structured scorer using cfg's thresholds; zero
// thresholds take their defaults.
func NewSolidWorks(cfg types.CompareConfig) *SolidWorks {
	return &SolidWorks{cfg: cfg.WithDefaults()}
}

// Compare scores path1 against path2. If the raw feature-tree windows are
// near-identical the full analysis is skipped and a perfect score returned.
// If either file cannot be extracted the empty structures are scored, the
// result is marked Degraded, and the extraction errors are returned with
// it. If either file cannot be stat'ed Compare returns FailedSolidWorks()
// with the error.
func (s *SolidWorks) Compare(path1, path2 string) (types.SolidWorksScore, error) {
	if s.fastPath(path1, path2) {
		return fastPathScore(), nil
	}

	// Extraction failures leave empty structures that score 0.
	data1, err1 := extract.File(path1)
	data2, err2 := extract.File(path2)
	extractErr := errors.Join(err1, err2)

	size1, err := fileSize(path1)
	if err != nil {
		return FailedSolidWorks(), err
	}
	size2, err := fileSize(path2)
	if err != nil {
		return FailedSolidWorks(), err
	}

	details := map[string]float64{
		types.RegionFeatureTree: FeatureTreeSimilarity(data1.Features, data2.Features),
		types.RegionSketchData:  SketchSimilarity(data1.Sketches, data2.Sketches),
		types.RegionGeometry:    GeometrySimilarity(data1.Geometry, data2.Geometry),
	}

	raw := map[string]float64{
		types.RegionFeatureTree: seqmatch.Percent(data1.Raw.FeatureTree, data2.Raw.FeatureTree),
		types.RegionSketchData:  seqmatch.Percent(data1.Raw.SketchData, data2.Raw.SketchData),
		types.RegionGeometry:    seqmatch.Percent(data1.Raw.Geometry, data2.Raw.Geometry),
	}

	sizeSim := SizeSimilarity(size1, size2)

	structured := details[types.RegionFeatureTree]*weightFeatureTree +
		details[types.RegionSketchData]*weightSketchData +
		details[types.RegionGeometry]*weightGeometry

	var rawScore float64
	for _, v := range raw {
		rawScore += v
	}
	rawScore /= float64(len(raw))

	final := structured*weightStructured + rawScore*weightRaw + sizeSim*weightSize

	result := types.SolidWorksScore{
		Score:          final,
		Details:        details,
		RawComparisons: raw,
		SizeSimilarity: sizeSim,
		Match:          final > s.cfg.MatchThreshold,
		Kind:           types.KindSolidWorks,
		Degraded:       extractErr != nil,
	}
	if extractErr != nil {
		return result, fmt.Errorf("extracting structure: %w", extractErr)
	}
	return result, nil
}

// fastPath compares the raw feature-tree windows read straight from disk.
// A read error on either side disables the shortcut.
func (s *SolidWorks) fastPath(path1, path2 string) bool {
	w1, err := extract.ReadChunk(path1, extract.FeatureTreeOffset, extract.FeatureTreeSize)
	if err != nil {
		return false
	}
	w2, err := extract.ReadChunk(path2, extract.FeatureTreeOffset, extract.FeatureTreeSize)
	if err != nil {
		return false
	}
	return seqmatch.Percent(w1, w2) > s.cfg.FastPathThreshold
}

func fastPathScore() types.SolidWorksScore {
	return types.SolidWorksScore{
		Score: 100,
		Details: map[string]float64{
			types.RegionFeatureTree: 100,
			types.RegionSketchData:  100,
			types.RegionGeometry:    100,
		},
		SizeSimilarity: 100,
		Match:          true,
		Kind:           types.KindSolidWorks,
		FastPath:       true,
	}
}

// FailedSolidWorks is the score reported when the structured scorer fails.
func FailedSolidWorks() types.SolidWorksScore {
	return types.SolidWorksScore{
		Details: map[string]float64{},
		Kind:    types.KindSolidWorks,
	}
}

// FeatureTreeSimilarity blends the order-aware similarity of the two
// feature name sequences with the fraction of matching name pairs.
// Either list empty scores 0.
func FeatureTreeSimilarity(f1, f2 []types.FeatureToken) float64 {
	if len(f1) == 0 || len(f2) == 0 {
		return 0
	}

	names1 := featureNames(f1)
	names2 := featureNames(f2)
	order := seqmatch.Strings(names1, names2)

	// Repeated names can produce more pairs than the longer list; the
	// overlap is capped at 1.
	pairs := 0
	for _, a := range names1 {
		for _, b := range names2 {
			if a == b {
				pairs++
			}
		}
	}
	overlap := min(float64(pairs)/float64(max(len(names1), len(names2))), 1)

	return (order*featureOrderWeight + overlap*featureOverlapWeight) * 100
}

func featureNames(features []types.FeatureToken) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}
	return names
}

// SketchSimilarity is the histogram overlap of sketch kinds: the sum of
// per-kind minimum counts over the sum of per-kind maximum counts.
func SketchSimilarity(s1, s2 []types.SketchRecord) float64 {
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	count1 := sketchCounts(s1)
	count2 := sketchCounts(s2)

	var lo, hi int
	for _, kind := range types.SketchKinds {
		lo += min(count1[kind], count2[kind])
		hi += max(count1[kind], count2[kind])
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi) * 100
}

func sketchCounts(sketches []types.SketchRecord) map[types.SketchKind]int {
	counts := make(map[types.SketchKind]int, len(types.SketchKinds))
	for _, s := range sketches {
		counts[s.Kind]++
	}
	return counts
}

// GeometrySimilarity blends volume closeness with the similarity of the
// two geometry signatures. Missing geometry on either side scores 0.
func GeometrySimilarity(g1, g2 *types.GeometryFingerprint) float64 {
	if g1 == nil || g2 == nil {
		return 0
	}

	var volumeSim float64
	if g1.Volume > 0 && g2.Volume > 0 {
		hi := max(g1.Volume, g2.Volume)
		diff := g1.Volume - g2.Volume
		if diff < 0 {
			diff = -diff
		}
		volumeSim = 1 - diff/hi
	}

	sigSim := seqmatch.Bytes(g1.Signature, g2.Signature)

	return (volumeSim*volumeWeight + sigSim*signatureWeight) * 100
}

// SizeSimilarity is min/max of two sizes as a percentage; 0 when both
// are empty.
func SizeSimilarity(size1, size2 int64) float64 {
	hi := max(size1, size2)
	if hi <= 0 {
		return 0
	}
	return float64(min(size1, size2)) / float64(hi) * 100
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}
