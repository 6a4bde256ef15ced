// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/swcompare/internal/classify"
	"github.com/pdiddy/swcompare/pkg/types"
)

func sampleBatch() types.BatchResult {
	return types.BatchResult{
		Summary: types.BatchSummary{
			RunID:    "3f1c9a2e-run",
			Folder:   "/parts",
			FileType: types.GroupSolidWorks,
			Files:    3,
			Pairs:    3,
			Compared: 3,
			Kept:     2,
		},
		Results: []types.ComparisonResult{
			{
				File1: "/parts/bracket-copy.sldprt", File2: "/parts/bracket.sldprt",
				Total: 86, Category: types.CategoryExactMatch, FileKind: types.KindSolidWorks,
				Match: true, Metadata: 100, Hash: 100, Content: 100, Structure: 100,
			},
			{
				File1: "/parts/bracket.sldprt", File2: "/parts/shaft, housing.sldprt",
				Total: 23.456, Category: types.CategoryDifferent, FileKind: types.KindSolidWorks,
				Metadata: 99.95, Content: 12.04, Structure: 0.05,
				Manipulation: types.ManipulationResult{Detected: true, Kind: types.ManipulationRename, Score: 74.2},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    types.OutputFormat
		wantErr bool
	}{
		{"", types.FormatTable, false},
		{"table", types.FormatTable, false},
		{"YAML", types.FormatYAML, false},
		{"json", types.FormatJSON, false},
		{"csv", types.FormatCSV, false},
		{"HTML", types.FormatHTML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), types.FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "file1,file2,metadata,hash,content,structure,total,category", lines[0])
	assert.Equal(t, "bracket-copy.sldprt,bracket.sldprt,100.0,100.0,100.0,100.0,86.0,Exact Match", lines[1])
	assert.Equal(t, `bracket.sldprt,"shaft, housing.sldprt",100.0,0.0,12.0,0.1,23.5,Different Files`, lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), types.FormatJSON))

	var got types.BatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "3f1c9a2e-run", got.Summary.RunID)
	require.Len(t, got.Results, 2)
	assert.Equal(t, types.CategoryExactMatch, got.Results[0].Category)
	assert.Contains(t, buf.String(), `"file_kind": "solidworks"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), types.FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "summary")
	assert.Contains(t, buf.String(), "category: Exact Match")
	assert.Contains(t, buf.String(), "kind: rename")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), types.FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "bracket-copy.sldprt")
	assert.Contains(t, out, "86.0")
	assert.Contains(t, out, "rename")
	assert.Contains(t, out, "2 of 3 pairs kept (3 files, 3 compared, 0 errors)")
	assert.NotContains(t, out, "[cancelled]")
}

func TestWriteTableEmptyCancelled(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, types.BatchResult{Summary: types.BatchSummary{Pairs: 10, Compared: 4, Cancelled: true}})

	out := buf.String()
	assert.Contains(t, out, "No pairs at or above the minimum score.")
	assert.Contains(t, out, "[cancelled]")
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleBatch(), types.OutputFormat("pdf")))
}

func TestWriteComparison(t *testing.T) {
	info := types.FileInfo{Name: "bracket.sldprt", Size: 32768, ModTime: time.Now()}
	r := sampleBatch().Results[1]
	r.Degraded = true

	var buf bytes.Buffer
	WriteComparison(&buf, r, info, info)
	out := buf.String()
	assert.Contains(t, out, "32.00 KB")
	assert.Contains(t, out, "Category:   Different Files")
	assert.Contains(t, out, "Total:      23.5")
	assert.Contains(t, out, "Suspected:  rename (risk 74.2)")
	assert.Contains(t, out, "fell back to defaults")
}

func TestWriteComparisonError(t *testing.T) {
	r := types.ComparisonResult{Category: types.CategoryError, FileKind: types.KindUnknown, Error: "empty file path"}

	var buf bytes.Buffer
	WriteComparison(&buf, r, types.FileInfo{}, types.FileInfo{})
	assert.Contains(t, buf.String(), "Category:   Error (empty file path)")
	assert.NotContains(t, buf.String(), "Total:")
}

func TestWriteComparisonEvaluatesStructuredPairs(t *testing.T) {
	r := sampleBatch().Results[0]
	r.Details = map[string]float64{
		types.RegionFeatureTree: 100,
		types.RegionSketchData:  100,
		types.RegionGeometry:    100,
	}

	var buf bytes.Buffer
	WriteComparison(&buf, r, types.FileInfo{}, types.FileInfo{})
	out := buf.String()
	assert.Contains(t, out, "  Feature tree:  100.0")
	assert.Contains(t, out, "Evaluation:\n")
	assert.Contains(t, out, "  - "+classify.VerdictTreeNearlyIdentical)
	assert.Contains(t, out, "  - "+classify.VerdictSaveAs)
}

func TestWriteComparisonGeneralHasNoEvaluation(t *testing.T) {
	r := sampleBatch().Results[0]
	r.FileKind = types.KindGeneral

	var buf bytes.Buffer
	WriteComparison(&buf, r, types.FileInfo{}, types.FileInfo{})
	assert.NotContains(t, buf.String(), "Evaluation:")
}

func TestWriteHTML(t *testing.T) {
	batch := sampleBatch()
	batch.Results[0].Details = map[string]float64{
		types.RegionFeatureTree: 100,
		types.RegionSketchData:  100,
		types.RegionGeometry:    100,
	}
	batch.Results[1].File2 = "/parts/<shaft>&housing.sldprt"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, batch, types.FormatHTML))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "3f1c9a2e-run")
	assert.Contains(t, out, `<tr class="medium"><td>bracket-copy.sldprt</td>`)
	assert.Contains(t, out, `<tr class="none"><td>bracket.sldprt</td>`)
	assert.Contains(t, out, "&lt;shaft&gt;&amp;housing.sldprt")
	assert.NotContains(t, out, "<shaft>")
	// Mean of 86 and 23.456.
	assert.Contains(t, out, "54.7%")

	// Only the pair with region sub-scores gets an evaluation.
	assert.Equal(t, 1, strings.Count(out, `<div class="structured">`))
	assert.Contains(t, out, "<li>"+classify.VerdictSaveAs+"</li>")
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, types.BatchResult{}))
	assert.Contains(t, buf.String(), "No pairs at or above the minimum score.")
	assert.NotContains(t, buf.String(), "<table>")
}
