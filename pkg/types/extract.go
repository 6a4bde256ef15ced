// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FeatureToken is a printable-ASCII run found in the feature-tree window.
type FeatureToken struct {
	// Name is the decoded run.
	Name string `json:"name" yaml:"name"`

	// Offset is the run's start position relative to the window.
	Offset int `json:"offset" yaml:"offset"`

	// Params is reserved for per-feature parameters and is empty today.
	Params map[string]any `json:"params" yaml:"params"`
}

// SketchKind is one of the four literal sketch markers.
type SketchKind string

const (
	SketchSketch SketchKind = "SKET"
	SketchLine   SketchKind = "LINE"
	SketchCircle SketchKind = "CIRC"
	SketchRect   SketchKind = "RECT"
)

// SketchKinds lists the markers in scan order.
var SketchKinds = []SketchKind{SketchSketch, SketchLine, SketchCircle, SketchRect}

// SketchRecord is one marker hit in the sketch-data window.
type SketchRecord struct {
	Kind   SketchKind `json:"kind" yaml:"kind"`
	Offset int        `json:"offset" yaml:"offset"`

	// Sample holds up to 20 bytes starting at the marker.
	Sample []byte `json:"sample" yaml:"sample"`
}

// GeometryFingerprint stands in for real 3D geometry: a digest of the
// geometry window plus a heuristic volume.
type GeometryFingerprint struct {
	// Signature is the MD5 digest of the geometry window.
	Signature []byte `json:"signature" yaml:"signature"`

	// DataSize is the number of bytes hashed.
	DataSize int `json:"data_size" yaml:"data_size"`

	// Volume is the absolute value of the double following a VOL or
	// VOLUME marker, or 1.0 when none parses.
	Volume float64 `json:"volume" yaml:"volume"`
}

// RawWindows holds the three byte regions read from a file.
type RawWindows struct {
	FeatureTree []byte `json:"feature_tree,omitempty" yaml:"feature_tree,omitempty"`
	SketchData  []byte `json:"sketch_data,omitempty" yaml:"sketch_data,omitempty"`
	Geometry    []byte `json:"geometry,omitempty" yaml:"geometry,omitempty"`
}

// ExtractedFile is everything the structured scorer knows about one file.
// Geometry is nil when extraction failed.
type ExtractedFile struct {
	Features []FeatureToken       `json:"features" yaml:"features"`
	Sketches []SketchRecord       `json:"sketches" yaml:"sketches"`
	Geometry *GeometryFingerprint `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Raw      RawWindows           `json:"raw" yaml:"raw"`
}

// EmptyExtractedFile returns the structure reported when a file cannot be
// read: no features, no sketches, no geometry, empty windows.
func EmptyExtractedFile() *ExtractedFile {
	return &ExtractedFile{
		Features: []FeatureToken{},
		Sketches: []SketchRecord{},
		Raw: RawWindows{
			FeatureTree: []byte{},
			SketchData:  []byte{},
			Geometry:    []byte{},
		},
	}
}
