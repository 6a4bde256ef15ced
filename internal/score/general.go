// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pdiddy/swcompare/internal/extract"
	"github.com/pdiddy/swcompare/internal/seqmatch"
	"github.com/pdiddy/swcompare/pkg/types"
)

const (
	sampleSize = 1024

	// secondsPerDay is the window beyond which modification times are
	// considered unrelated.
	secondsPerDay = 86400

	// hashGate is the size similarity a pair must exceed before the full
	// contents are hashed.
	hashGate = 99

	headerWeight = 0.6
	middleWeight = 0.4

	generalSizeWeight    = 0.3
	generalTimeWeight    = 0.2
	generalContentWeight = 0.5
)

// General scores arbitrary files by size, modification time, two sampled
// byte windows, and full-content digest equality.
type General struct{}

// NewGeneral returns a generic scorer.
func NewGeneral() *General {
	return &General{}
}

// Compare scores path1 against path2. On failure it returns
// FailedGeneral() with the error.
func (g *General) Compare(path1, path2 string) (types.GeneralScore, error) {
	st1, err := os.Stat(path1)
	if err != nil {
		return FailedGeneral(), fmt.Errorf("stat %s: %w", path1, err)
	}
	st2, err := os.Stat(path2)
	if err != nil {
		return FailedGeneral(), fmt.Errorf("stat %s: %w", path2, err)
	}

	sizeSim := sizeCloseness(st1.Size(), st2.Size())
	timeSim := TimeSimilarity(ModTimeDiff(st1, st2))
	contentSim := contentSimilarity(path1, path2, st1.Size(), st2.Size())

	match := false
	if sizeSim > hashGate {
		match = sameDigest(path1, path2)
	}

	return types.GeneralScore{
		Score:             sizeSim*generalSizeWeight + timeSim*generalTimeWeight + contentSim*generalContentWeight,
		SizeSimilarity:    sizeSim,
		TimeSimilarity:    timeSim,
		ContentSimilarity: contentSim,
		Match:             match,
		Kind:              types.KindGeneral,
	}, nil
}

// FailedGeneral is the score reported when the generic scorer fails.
func FailedGeneral() types.GeneralScore {
	return types.GeneralScore{Kind: types.KindGeneral}
}

// sizeCloseness is 1 - |a-b|/max(a,b) as a percentage; 0 when both are
// empty.
func sizeCloseness(size1, size2 int64) float64 {
	hi := max(size1, size2)
	if hi <= 0 {
		return 0
	}
	diff := size1 - size2
	if diff < 0 {
		diff = -diff
	}
	return (1 - float64(diff)/float64(hi)) * 100
}

// ModTimeDiff returns the absolute modification time difference in seconds.
func ModTimeDiff(st1, st2 os.FileInfo) float64 {
	return math.Abs(st1.ModTime().Sub(st2.ModTime()).Seconds())
}

// TimeSimilarity maps a modification time difference in seconds to
// [0, 100], reaching 0 at one day.
func TimeSimilarity(diff float64) float64 {
	if diff >= secondsPerDay {
		return 0
	}
	return 100 * (1 - diff/secondsPerDay)
}

// contentSimilarity blends the similarity of the first 1 KiB of each file
// with the 1 KiB starting at each file's own midpoint. Any read failure
// scores 0.
func contentSimilarity(path1, path2 string, size1, size2 int64) float64 {
	head1, err := extract.ReadChunk(path1, 0, sampleSize)
	if err != nil {
		return 0
	}
	head2, err := extract.ReadChunk(path2, 0, sampleSize)
	if err != nil {
		return 0
	}
	mid1, err := extract.ReadChunk(path1, size1/2, sampleSize)
	if err != nil {
		return 0
	}
	mid2, err := extract.ReadChunk(path2, size2/2, sampleSize)
	if err != nil {
		return 0
	}
	return seqmatch.Percent(head1, head2)*headerWeight + seqmatch.Percent(mid1, mid2)*middleWeight
}

func sameDigest(path1, path2 string) bool {
	d1, err := Digest(path1)
	if err != nil {
		return false
	}
	d2, err := Digest(path2)
	if err != nil {
		return false
	}
	return bytes.Equal(d1, d2)
}

// Digest returns the MD5 digest of the file's full contents.
func Digest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
