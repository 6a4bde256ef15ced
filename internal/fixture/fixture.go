// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixture builds synthetic SolidWorks-like part files with known
// feature tokens, sketch markers, and volume, laid out at the offsets the
// extractor reads. Filler bytes are non-printable so they never form
// tokens, and vary with the seed so byte windows are not degenerate.
package fixture

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/pdiddy/swcompare/internal/extract"
)

// DefaultSize keeps the end-relative geometry window clear of the feature
// tree and sketch windows.
const DefaultSize = 0x8000

// Part describes a synthetic part file.
type Part struct {
	// Size is the total file size (DefaultSize when zero).
	Size int

	// Seed varies the filler bytes.
	Seed uint32

	// Features are written at the start of the feature-tree window,
	// separated by one filler byte.
	Features []string

	// Sketches are markers written at the start of the sketch window,
	// each followed by 16 filler bytes.
	Sketches []string

	// Volume, when non-zero, is written after a VOL marker at the start
	// of the geometry window.
	Volume float64
}

// Bytes renders the part.
func (p Part) Bytes() []byte {
	size := p.Size
	if size == 0 {
		size = DefaultSize
	}
	data := make([]byte, size)

	state := p.Seed*2654435761 + 1
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = 0x80 | byte(state>>24)&0x7f
	}

	pos := extract.FeatureTreeOffset + extract.FeatureHeaderSize
	for _, name := range p.Features {
		pos += copy(data[pos:], name) + 1
	}

	pos = extract.SketchDataOffset
	for _, marker := range p.Sketches {
		pos += copy(data[pos:], marker) + 16
	}

	if p.Volume != 0 {
		pos = size - extract.GeometryEndOffset
		pos += copy(data[pos:], "VOL")
		binary.LittleEndian.PutUint64(data[pos:], math.Float64bits(p.Volume))
	}
	return data
}

// Write renders the part to path.
func (p Part) Write(path string) error {
	if err := os.WriteFile(path, p.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing fixture %s: %w", path, err)
	}
	return nil
}

// Samples returns a small set of related parts keyed by file name: an
// original, a byte-identical copy, a Save-As variant with one renamed
// feature, and an unrelated part.
func Samples() map[string]Part {
	base := Part{
		Seed:     1,
		Features: []string{"Origin", "Sketch1", "Boss-Extrude1", "Fillet1", "Sketch2", "Cut-Extrude1"},
		Sketches: []string{"SKET", "LINE", "LINE", "CIRC", "RECT"},
		Volume:   1250.5,
	}
	variant := base
	variant.Seed = 2
	variant.Features = []string{"Origin", "Sketch1", "Boss-Extrude1", "Chamfer1", "Sketch2", "Cut-Extrude1"}
	variant.Volume = 1248.0

	other := Part{
		Seed:     9,
		Features: []string{"Plane", "Revolve1", "Shell1"},
		Sketches: []string{"CIRC", "CIRC"},
		Volume:   88.25,
	}

	return map[string]Part{
		"bracket.sldprt":       base,
		"bracket-copy.sldprt":  base,
		"bracket-rev-b.sldprt": variant,
		"shaft-housing.sldprt": other,
	}
}

// WriteSamples writes Samples into dir and returns the written paths.
func WriteSamples(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	var paths []string
	for name, part := range Samples() {
		path := filepath.Join(dir, name)
		if err := part.Write(path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}
