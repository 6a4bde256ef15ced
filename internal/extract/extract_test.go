// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/swcompare/internal/extract"
	"github.com/pdiddy/swcompare/internal/fixture"
	"github.com/pdiddy/swcompare/pkg/types"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func assertEmpty(t *testing.T, got *types.ExtractedFile) {
	t.Helper()
	require.NotNil(t, got)
	assert.Empty(t, got.Features)
	assert.Empty(t, got.Sketches)
	assert.Nil(t, got.Geometry)
	assert.Empty(t, got.Raw.FeatureTree)
	assert.Empty(t, got.Raw.SketchData)
	assert.Empty(t, got.Raw.Geometry)
}

func TestFileRobustness(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"zero bytes", func(t *testing.T) string { return writeFile(t, "empty.sldprt", nil) }},
		{"ten bytes", func(t *testing.T) string { return writeFile(t, "tiny.sldprt", []byte("0123456789")) }},
		{"just under geometry offset", func(t *testing.T) string {
			return writeFile(t, "short.sldprt", make([]byte, extract.GeometryEndOffset-1))
		}},
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.sldprt") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract.File(tt.path(t))
			assert.Error(t, err)
			assertEmpty(t, got)
		})
	}
}

func TestFileTooShortIsSentinel(t *testing.T) {
	_, err := extract.File(writeFile(t, "tiny.sldprt", []byte("0123456789")))
	assert.ErrorIs(t, err, extract.ErrTooShort)
}

func TestFileExtractsFixture(t *testing.T) {
	part := fixture.Part{
		Seed:     3,
		Features: []string{"Origin", "Boss-Extrude1", "abc", "Fillet1"},
		Sketches: []string{"SKET", "LINE", "CIRC", "LINE"},
		Volume:   -42.5,
	}
	path := writeFile(t, "part.sldprt", part.Bytes())

	got, err := extract.File(path)
	require.NoError(t, err)

	names := make([]string, len(got.Features))
	for i, f := range got.Features {
		names[i] = f.Name
		assert.NotNil(t, f.Params)
	}
	// "abc" is too short to be a token.
	assert.Equal(t, []string{"Origin", "Boss-Extrude1", "Fillet1"}, names)
	assert.Equal(t, 0, got.Features[0].Offset)
	assert.Equal(t, len("Origin")+1, got.Features[1].Offset)

	kinds := make([]types.SketchKind, len(got.Sketches))
	for i, s := range got.Sketches {
		kinds[i] = s.Kind
		assert.Len(t, s.Sample, 20)
	}
	// Grouped by marker in scan order.
	assert.Equal(t, []types.SketchKind{"SKET", "LINE", "LINE", "CIRC"}, kinds)

	require.NotNil(t, got.Geometry)
	assert.Equal(t, extract.GeometrySize, got.Geometry.DataSize)
	assert.Len(t, got.Geometry.Signature, 16)
	assert.Equal(t, 42.5, got.Geometry.Volume)

	assert.Len(t, got.Raw.FeatureTree, extract.FeatureTreeSize)
	assert.Len(t, got.Raw.SketchData, extract.SketchDataSize)
	assert.Len(t, got.Raw.Geometry, extract.GeometrySize)
}

func TestFileDeterministic(t *testing.T) {
	path := writeFile(t, "part.sldprt", fixture.Samples()["bracket.sldprt"].Bytes())

	a, err := extract.File(path)
	require.NoError(t, err)
	b, err := extract.File(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{"empty", nil, []string{}},
		{"space splits runs", []byte("Sketch1 Extrude2"), []string{"Sketch1", "Extrude2"}},
		{"length four is kept", []byte{0, 'a', 'b', 'c', 'd', 0}, []string{"abcd"}},
		{"length three is dropped", []byte{0, 'a', 'b', 'c', 0}, []string{}},
		{"del terminates run", []byte("Plane\x7fTop1"), []string{"Plane", "Top1"}},
		{"run at end of window", []byte("\x01\x02Shell"), []string{"Shell"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.Features(tt.data)
			names := []string{}
			for _, f := range got {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFeaturesOffsets(t *testing.T) {
	got := extract.Features([]byte("\x00\x00Loft1\x00\x00\x00Sweep2"))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Offset)
	assert.Equal(t, 10, got[1].Offset)
}

func TestSketches(t *testing.T) {
	data := []byte("LINESKETxxLINELINE..RECT")
	got := extract.Sketches(data)

	type hit struct {
		kind   types.SketchKind
		offset int
	}
	var hits []hit
	for _, s := range got {
		hits = append(hits, hit{s.Kind, s.Offset})
	}
	assert.Equal(t, []hit{
		{"SKET", 4},
		{"LINE", 0},
		{"LINE", 10},
		{"LINE", 14},
		{"RECT", 20},
	}, hits)

	// Samples are truncated at the end of the window.
	assert.Equal(t, []byte("RECT"), got[4].Sample)
	assert.Equal(t, []byte("LINESKETxxLINELINE.."), got[1].Sample)
}

func TestSketchesNone(t *testing.T) {
	assert.Empty(t, extract.Sketches([]byte("nothing here")))
}

func volumeWindow(marker string, v float64, pad int) []byte {
	data := make([]byte, pad)
	data = append(data, marker...)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return append(data, buf[:]...)
}

func TestGeometryVolume(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want float64
	}{
		{"no marker", []byte("no volume here"), 1.0},
		{"VOL marker", volumeWindow("VOL", 12.5, 10), 12.5},
		{"negative is absolute", volumeWindow("VOL", -3.25, 0), 3.25},
		{"truncated double", []byte("xxVOL\x01\x02\x03"), 1.0},
		{"NaN defaults", volumeWindow("VOL", math.NaN(), 0), 1.0},
		{"Inf defaults", volumeWindow("VOL", math.Inf(-1), 0), 1.0},
		{"NaN after VOL falls through to VOLUME", append(volumeWindow("VOL", math.NaN(), 0), volumeWindow("VOLUME", 9.5, 4)...), 9.5},
		{"NaN after VOL with truncated VOLUME defaults", append(volumeWindow("VOL", math.NaN(), 2), "VOLUME\x01\x02"...), 1.0},
		// VOLUME also contains VOL, so the first VOL hit decodes "UME" plus
		// five bytes of the double.
		{"VOLUME is found as VOL first", volumeWindow("VOLUME", 7, 0), volumeOf([]byte("UME"), 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := extract.Geometry(tt.data)
			assert.Equal(t, tt.want, g.Volume)
			assert.Equal(t, len(tt.data), g.DataSize)
			assert.Len(t, g.Signature, 16)
		})
	}
}

func volumeOf(prefix []byte, v float64) float64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	raw := append(append([]byte{}, prefix...), buf[:5]...)
	return math.Abs(math.Float64frombits(binary.LittleEndian.Uint64(raw)))
}

func TestGeometrySignatureDiffers(t *testing.T) {
	a := extract.Geometry([]byte("geometry-a"))
	b := extract.Geometry([]byte("geometry-b"))
	assert.NotEqual(t, a.Signature, b.Signature)
}

func TestReadChunk(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeFile(t, "chunk.bin", data)

	got, err := extract.ReadChunk(path, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 11, 12, 13, 14}, got)

	got, err = extract.ReadChunk(path, -4, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte{96, 97, 98, 99}, got)

	got, err = extract.ReadChunk(path, 500, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = extract.ReadChunk(path, -200, 10)
	assert.ErrorIs(t, err, extract.ErrTooShort)
	assert.Empty(t, got)

	_, err = extract.ReadChunk(filepath.Join(t.TempDir(), "missing"), 0, 10)
	assert.Error(t, err)
}
