// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps a pair's final score to a category label and reads
// structured sub-scores into plain-language verdicts.
package classify

import "github.com/pdiddy/swcompare/pkg/types"

type band struct {
	min      float64
	category types.Category
}

// Bands are checked top-down; the first whose lower bound the score
// reaches wins.
var (
	solidWorksBands = []band{
		{98, types.CategoryExactMatch},
		{85, types.CategorySaveAsCopy},
		{70, types.CategoryMinorChanges},
		{40, types.CategoryMajorChanges},
	}
	generalBands = []band{
		{95, types.CategoryNearlyIdentical},
		{80, types.CategoryVerySimilar},
		{60, types.CategoryModerate},
		{30, types.CategoryWeak},
	}
)

// Classify returns the category for score. An exact hash match is always
// CategoryExactMatch.
func Classify(score float64, hashMatch bool, kind types.FileKind) types.Category {
	if hashMatch {
		return types.CategoryExactMatch
	}
	bands := generalBands
	if kind == types.KindSolidWorks {
		bands = solidWorksBands
	}
	for _, b := range bands {
		if score >= b.min {
			return b.category
		}
	}
	return types.CategoryDifferent
}
