// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package seqmatch computes the sequence-similarity ratio shared by every
// scorer: 2*M/T, where M is the number of elements in the matching blocks
// found by the longest-matching-block algorithm (with the popular-element
// heuristic for sequences of 200 or more elements) and T is the combined
// length. Two empty sequences have ratio 1.
package seqmatch

import (
	"github.com/pmezard/go-difflib/difflib"
)

// byteTokens maps each byte value to a one-element token so byte windows
// can be fed to the string-based matcher.
var byteTokens = func() [256]string {
	var t [256]string
	for i := range t {
		t[i] = string([]byte{byte(i)})
	}
	return t
}()

// Bytes returns the similarity ratio of two byte windows in [0, 1].
func Bytes(a, b []byte) float64 {
	return Strings(tokenize(a), tokenize(b))
}

// Strings returns the similarity ratio of two token sequences in [0, 1].
// Order matters: the sequences are not treated as sets.
func Strings(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

// Text returns the similarity ratio of two strings compared rune by rune.
func Text(a, b string) float64 {
	return Strings(runes(a), runes(b))
}

// Percent is Bytes scaled to [0, 100].
func Percent(a, b []byte) float64 {
	return Bytes(a, b) * 100
}

func tokenize(data []byte) []string {
	out := make([]string, len(data))
	for i, c := range data {
		out[i] = byteTokens[c]
	}
	return out
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
