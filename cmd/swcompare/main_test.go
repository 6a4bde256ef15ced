// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/swcompare/internal/classify"
	"github.com/pdiddy/swcompare/internal/fixture"
	"github.com/pdiddy/swcompare/pkg/types"
)

// execute runs the root command with args. Flag values persist on the
// package-level commands between calls, so each test sets what it reads.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--quiet"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSamples(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := fixture.WriteSamples(dir)
	require.NoError(t, err)
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "swcompare dev\n", out)
}

func TestCompareCommandJSON(t *testing.T) {
	dir := writeSamples(t)

	out, err := execute(t, "compare", "--json",
		filepath.Join(dir, "bracket.sldprt"), filepath.Join(dir, "bracket-copy.sldprt"))
	require.NoError(t, err)

	var got types.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, types.CategoryExactMatch, got.Category)
	assert.True(t, got.Match)
	assert.Equal(t, types.KindSolidWorks, got.FileKind)
}

func TestCompareCommandPrintsEvaluation(t *testing.T) {
	dir := writeSamples(t)

	out, err := execute(t, "compare", "--json=false", "--yaml=false",
		filepath.Join(dir, "bracket.sldprt"), filepath.Join(dir, "bracket-copy.sldprt"))
	require.NoError(t, err)
	assert.Contains(t, out, "Category:   Exact Match")
	assert.Contains(t, out, "Evaluation:")
	assert.Contains(t, out, "  - "+classify.VerdictSaveAs)
}

func TestScanCommandWritesHTML(t *testing.T) {
	dir := writeSamples(t)
	reportPath := filepath.Join(t.TempDir(), "report.html")

	_, err := execute(t, "scan", dir,
		"--type", "solidworks", "--format", "html", "--workers", "2",
		"--output", reportPath, "--metrics-file", "")
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "<td>bracket-copy.sldprt</td>")
}

func TestScanCommandWritesReportAndMetrics(t *testing.T) {
	dir := writeSamples(t)
	outDir := t.TempDir()
	reportPath := filepath.Join(outDir, "report.csv")
	metricsPath := filepath.Join(outDir, "swcompare.prom")

	_, err := execute(t, "scan", dir,
		"--type", "solidworks", "--format", "csv", "--workers", "2",
		"--output", reportPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "file1,file2,metadata,hash,content,structure,total,category", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "bracket-copy.sldprt,bracket.sldprt,"))
	assert.True(t, strings.HasSuffix(lines[1], ",86.0,Exact Match"))

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `swcompare_comparisons_total{category="Exact Match",kind="solidworks"} 1`)
}

func TestExtractCommandJSON(t *testing.T) {
	dir := writeSamples(t)

	out, err := execute(t, "extract", "--format", "json", filepath.Join(dir, "bracket.sldprt"))
	require.NoError(t, err)

	var got types.ExtractedFile
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Geometry)
	assert.InDelta(t, 1250.5, got.Geometry.Volume, 1e-9)
	assert.Empty(t, got.Raw.FeatureTree)

	var names []string
	for _, f := range got.Features {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "Boss-Extrude1")
}

func TestExtractCommandTooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.sldprt")
	require.NoError(t, os.WriteFile(path, []byte("tiny"), 0o644))

	_, err := execute(t, "extract", "--format", "yaml", path)
	assert.Error(t, err)
}
