// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads fixed byte windows from SolidWorks-like container
// files and recovers heuristic feature tokens, sketch markers, and a
// geometry fingerprint. The offsets are empirical guesses, not a documented
// file format.
package extract

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pdiddy/swcompare/pkg/types"
)

// Window layout. The geometry offset is relative to the end of the file.
const (
	FeatureTreeOffset = 0x1000
	FeatureHeaderSize = 100
	FeatureTreeSize   = 500

	SketchDataOffset = 0x3000
	SketchDataSize   = 1000

	GeometryEndOffset = 0x3000
	GeometrySize      = 2000

	minTokenLen = 4
	sampleSize  = 20
	volumeBytes = 8
)

// defaultVolume is reported when no volume marker parses.
const defaultVolume = 1.0

var volumeMarkers = [][]byte{[]byte("VOL"), []byte("VOLUME")}

// ErrTooShort is returned when the file is shorter than the end-relative
// geometry offset.
var ErrTooShort = errors.New("file shorter than geometry window offset")

// File extracts features, sketches, and geometry from the file at path.
// On any failure it returns types.EmptyExtractedFile together with the
// error; the returned structure is never nil.
func File(path string) (*types.ExtractedFile, error) {
	raw, err := readWindows(path)
	if err != nil {
		return types.EmptyExtractedFile(), err
	}
	return &types.ExtractedFile{
		Features: Features(raw.FeatureTree),
		Sketches: Sketches(raw.SketchData),
		Geometry: Geometry(raw.Geometry),
		Raw:      raw,
	}, nil
}

// readWindows reads the three regions from a single open file.
func readWindows(path string) (types.RawWindows, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.RawWindows{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return types.RawWindows{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() < GeometryEndOffset {
		return types.RawWindows{}, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooShort)
	}

	// The header preceding the feature tree is read and discarded.
	tree, err := readAt(f, FeatureTreeOffset+FeatureHeaderSize, FeatureTreeSize)
	if err != nil {
		return types.RawWindows{}, fmt.Errorf("reading feature tree of %s: %w", path, err)
	}
	sketch, err := readAt(f, SketchDataOffset, SketchDataSize)
	if err != nil {
		return types.RawWindows{}, fmt.Errorf("reading sketch data of %s: %w", path, err)
	}
	geom, err := readAt(f, info.Size()-GeometryEndOffset, GeometrySize)
	if err != nil {
		return types.RawWindows{}, fmt.Errorf("reading geometry of %s: %w", path, err)
	}

	return types.RawWindows{FeatureTree: tree, SketchData: sketch, Geometry: geom}, nil
}

// readAt reads up to n bytes at off. Reading past the end of the file is
// not an error; the result is truncated.
func readAt(r io.ReaderAt, off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:got], nil
}

// ReadChunk opens path and reads up to size bytes at offset. A negative
// offset is relative to the end of the file. On failure it returns an
// empty slice and the error.
func ReadChunk(path string, offset int64, size int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return []byte{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if offset < 0 {
		info, err := f.Stat()
		if err != nil {
			return []byte{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size()+offset < 0 {
			return []byte{}, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooShort)
		}
		offset += info.Size()
	}

	data, err := readAt(f, offset, size)
	if err != nil {
		return []byte{}, fmt.Errorf("reading %s at %d: %w", path, offset, err)
	}
	return data, nil
}

// isTokenByte reports whether c is printable ASCII other than space.
func isTokenByte(c byte) bool {
	return c > 32 && c < 127
}

// Features returns every run of more than three printable bytes in data,
// in order of appearance.
func Features(data []byte) []types.FeatureToken {
	features := []types.FeatureToken{}
	for i := 0; i < len(data); i++ {
		if !isTokenByte(data[i]) {
			continue
		}
		start := i
		for i < len(data) && isTokenByte(data[i]) {
			i++
		}
		if i-start >= minTokenLen {
			features = append(features, types.FeatureToken{
				Name:   string(data[start:i]),
				Offset: start,
				Params: map[string]any{},
			})
		}
	}
	return features
}

// Sketches returns the hits of each sketch marker in data. Markers are
// scanned one after another, so hits are grouped by kind. After a hit the
// scan resumes just past the marker.
func Sketches(data []byte) []types.SketchRecord {
	sketches := []types.SketchRecord{}
	for _, kind := range types.SketchKinds {
		marker := []byte(kind)
		pos := 0
		for {
			idx := bytes.Index(data[pos:], marker)
			if idx < 0 {
				break
			}
			at := pos + idx
			end := min(at+sampleSize, len(data))
			sketches = append(sketches, types.SketchRecord{
				Kind:   kind,
				Offset: at,
				Sample: bytes.Clone(data[at:end]),
			})
			pos = at + len(marker)
		}
	}
	return sketches
}

// Geometry fingerprints the geometry window.
func Geometry(data []byte) *types.GeometryFingerprint {
	sum := md5.Sum(data)
	return &types.GeometryFingerprint{
		Signature: sum[:],
		DataSize:  len(data),
		Volume:    volume(data),
	}
}

// volume decodes the little-endian double following the first VOL marker,
// then VOLUME. Non-finite values count as a parse failure.
func volume(data []byte) float64 {
	for _, marker := range volumeMarkers {
		pos := bytes.Index(data, marker)
		if pos < 0 {
			continue
		}
		start := pos + len(marker)
		if start+volumeBytes > len(data) {
			continue
		}
		v := math.Float64frombits(binary.LittleEndian.Uint64(data[start : start+volumeBytes]))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		return math.Abs(v)
	}
	return defaultVolume
}
