// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders batch results and single comparisons as YAML,
// JSON, CSV, HTML, or a fixed-width table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/swcompare/internal/classify"
	"github.com/pdiddy/swcompare/pkg/types"
)

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{"file1", "file2", "metadata", "hash", "content", "structure", "total", "category"}

// ParseFormat validates a format name. Empty means table.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(s)); f {
	case "":
		return types.FormatTable, nil
	case types.FormatTable, types.FormatYAML, types.FormatJSON, types.FormatCSV, types.FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: use table, yaml, json, csv, or html", s)
	}
}

// Write renders batch to w in format.
func Write(w io.Writer, batch types.BatchResult, format types.OutputFormat) error {
	switch format {
	case types.FormatYAML:
		return WriteYAML(w, batch)
	case types.FormatJSON:
		return WriteJSON(w, batch)
	case types.FormatCSV:
		return WriteCSV(w, batch.Results)
	case types.FormatHTML:
		return WriteHTML(w, batch)
	case types.FormatTable, "":
		WriteTable(w, batch)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteYAML marshals v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON marshals v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteCSV writes one row per result with scores to one decimal.
func WriteCSV(w io.Writer, results []types.ComparisonResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{
			filepath.Base(r.File1),
			filepath.Base(r.File2),
			oneDecimal(r.Metadata),
			oneDecimal(r.Hash),
			oneDecimal(r.Content),
			oneDecimal(r.Structure),
			oneDecimal(r.Total),
			string(r.Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// WriteTable writes results as a human-readable table followed by the
// run summary.
func WriteTable(w io.Writer, batch types.BatchResult) {
	s := batch.Summary
	if len(batch.Results) == 0 {
		fmt.Fprintln(w, "No pairs at or above the minimum score.")
	} else {
		fmt.Fprintf(w, "%-4s  %-28s  %-28s  %-6s  %-20s  %s\n",
			"Rank", "File 1", "File 2", "Total", "Category", "Manipulation")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for i, r := range batch.Results {
			manip := ""
			if r.Manipulation.Detected {
				manip = string(r.Manipulation.Kind)
			}
			fmt.Fprintf(w, "%-4d  %-28s  %-28s  %-6.1f  %-20s  %s\n",
				i+1, truncate(filepath.Base(r.File1), 28), truncate(filepath.Base(r.File2), 28),
				r.Total, r.Category, manip)
		}
	}

	fmt.Fprintf(w, "\n%d of %d pairs kept (%d files, %d compared, %d errors)",
		s.Kept, s.Pairs, s.Files, s.Compared, s.Errors)
	if s.Cancelled {
		fmt.Fprint(w, " [cancelled]")
	}
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// WriteComparison writes one result as labelled lines, preceded by the
// file metadata of both sides.
func WriteComparison(w io.Writer, r types.ComparisonResult, info1, info2 types.FileInfo) {
	fmt.Fprintf(w, "File 1:     %s\n", info1)
	fmt.Fprintf(w, "File 2:     %s\n", info2)
	fmt.Fprintf(w, "Kind:       %s\n", r.FileKind)
	if r.Error != "" {
		fmt.Fprintf(w, "Category:   %s (%s)\n", r.Category, r.Error)
		return
	}
	fmt.Fprintf(w, "Category:   %s\n", r.Category)
	fmt.Fprintf(w, "Total:      %.1f\n", r.Total)
	fmt.Fprintf(w, "Metadata:   %.1f\n", r.Metadata)
	fmt.Fprintf(w, "Hash:       %.1f\n", r.Hash)
	fmt.Fprintf(w, "Content:    %.1f\n", r.Content)
	fmt.Fprintf(w, "Structure:  %.1f\n", r.Structure)
	if r.FileKind == types.KindSolidWorks && len(r.Details) > 0 {
		fmt.Fprintf(w, "  Feature tree:  %.1f\n", r.Details[types.RegionFeatureTree])
		fmt.Fprintf(w, "  Sketch data:   %.1f\n", r.Details[types.RegionSketchData])
		fmt.Fprintf(w, "  Geometry:      %.1f\n", r.Details[types.RegionGeometry])
		fmt.Fprintln(w, "Evaluation:")
		for _, v := range classify.Evaluate(r.Total, r.Details) {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
	if r.Manipulation.Detected {
		fmt.Fprintf(w, "Suspected:  %s (risk %.1f)\n", r.Manipulation.Kind, r.Manipulation.Score)
	}
	if r.Degraded {
		fmt.Fprintln(w, "Note:       one or more sub-scores fell back to defaults")
	}
}
