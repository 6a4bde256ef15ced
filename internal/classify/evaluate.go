// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/swcompare/pkg/types"

// Verdicts produced by Evaluate.
const (
	VerdictUnavailable = "No structural breakdown to evaluate."
	VerdictIdentical   = "Files are identical or differ only slightly."

	VerdictTreeNearlyIdentical     = "Feature tree nearly identical."
	VerdictTreeSimilarGeometry     = "Feature tree similar but geometry changed."
	VerdictGeometrySimilarTree     = "Geometry similar but feature tree changed significantly."
	VerdictTreeDifferent           = "Feature trees differ significantly."
	VerdictSketchNearlyIdentical   = "Sketch data nearly identical."
	VerdictSketchMinorChanges      = "Sketch data has minor changes."
	VerdictSketchDifferent         = "Sketch data differs significantly."
	VerdictGeometryNearlyIdentical = "Geometry nearly identical."
	VerdictGeometryMinorChanges    = "Geometry has minor changes."
	VerdictGeometryDifferent       = "Geometry differs significantly."

	VerdictSaveAs           = "Probably created via Save As."
	VerdictRebuiltGeometry  = "Same feature tree rebuilt with different geometry."
	VerdictConvergentDesign = "Built differently but with similar geometry."

	VerdictSimilarWithChanges     = "Files are similar but contain several changes."
	VerdictSignificantlyDifferent = "Files differ significantly."
)

// Evaluate reads a structured pair's region sub-scores and returns the
// verdicts they support, most specific region first. total is the pair's
// final score. Without sub-scores it returns VerdictUnavailable alone.
func Evaluate(total float64, details map[string]float64) []string {
	if len(details) == 0 {
		return []string{VerdictUnavailable}
	}
	if total > 98 {
		return []string{VerdictIdentical}
	}

	tree := details[types.RegionFeatureTree]
	sketch := details[types.RegionSketchData]
	geom := details[types.RegionGeometry]

	var out []string
	switch {
	case tree > 95:
		out = append(out, VerdictTreeNearlyIdentical)
	case tree > 90 && geom < 80:
		out = append(out, VerdictTreeSimilarGeometry)
	case tree < 70 && geom > 90:
		out = append(out, VerdictGeometrySimilarTree)
	case tree < 50:
		out = append(out, VerdictTreeDifferent)
	}

	switch {
	case sketch > 90:
		out = append(out, VerdictSketchNearlyIdentical)
	case sketch > 70:
		out = append(out, VerdictSketchMinorChanges)
	case sketch < 40:
		out = append(out, VerdictSketchDifferent)
	}

	switch {
	case geom > 95:
		out = append(out, VerdictGeometryNearlyIdentical)
	case geom > 80:
		out = append(out, VerdictGeometryMinorChanges)
	case geom < 50:
		out = append(out, VerdictGeometryDifferent)
	}

	// How the second file was likely produced.
	switch {
	case tree > 85 && sketch > 85 && geom > 85:
		out = append(out, VerdictSaveAs)
	case tree > 90 && sketch > 70 && geom < 60:
		out = append(out, VerdictRebuiltGeometry)
	case tree < 50 && sketch < 50 && geom > 90:
		out = append(out, VerdictConvergentDesign)
	}

	if len(out) == 0 {
		if total > 70 {
			return []string{VerdictSimilarWithChanges}
		}
		return []string{VerdictSignificantlyDifferent}
	}
	return out
}
