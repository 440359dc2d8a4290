// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package biocompress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// roundTrip is the workhorse for every scenario below: encode with height
// h, decode, and assert the output matches the input exactly.
func roundTrip(t *testing.T, s string, h int) {
	t.Helper()
	data, err := Encode(s, h)
	assert.NoError(t, err)
	got, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, s, got, "s=%q h=%d", s, h)
}

// TestScenarioRepeatedSingleBase covers a run of a single repeated base
// short enough that the profitability check rejects every candidate
// reference, leaving a single raw segment with no references at all.
func TestScenarioRepeatedSingleBase(t *testing.T) {
	roundTrip(t, "AAAA", 2)
}

// TestScenarioFactorAfterRaw covers an exact repeat of an earlier
// substring following an initial raw run.
func TestScenarioFactorAfterRaw(t *testing.T) {
	roundTrip(t, "ACGTACGT", 3)
}

// TestScenarioPalindromeNoEarlierMatch covers an input in which no window's
// reverse complement (GCA for CGT, TGC for ACG, and so on) occurs earlier at
// full height, so the only palindrome candidates are short ones.
func TestScenarioPalindromeNoEarlierMatch(t *testing.T) {
	roundTrip(t, "ACGTCGTA", 3)
}

// TestScenarioRepeatedFactor covers a sequence that repeats its first four
// bases (AATT twice). The matcher takes a palindrome at i=2 instead: TTA is
// the complement of AAT at position 0, and that reference extends to the
// end of the input, overlapping the bases it appends.
func TestScenarioRepeatedFactor(t *testing.T) {
	roundTrip(t, "AATTAATT", 3)
}

// TestScenarioFullComplementHalf covers a sequence whose second half is
// the pointwise complement of its first half.
func TestScenarioFullComplementHalf(t *testing.T) {
	roundTrip(t, "ACGTACGT"+"TGCATGCA", 3)
}

// TestScenarioPseudoRandomRoundTrip covers a long pseudo-random sequence
// with little structure for the matcher to exploit, at several heights.
func TestScenarioPseudoRandomRoundTrip(t *testing.T) {
	const bases = "ACTG"
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, 10000)
	for i := range buf {
		buf[i] = bases[rng.Intn(len(bases))]
	}
	s := string(buf)

	for _, h := range []int{6, 9, 11} {
		roundTrip(t, s, h)
	}
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	_, err := Encode("ACGN", 4)
	assert.Equal(t, ErrInvalidInput, err)
}

func TestNewEncoderRejectsHeightOutOfRange(t *testing.T) {
	_, err := NewEncoder(0)
	assert.Equal(t, ErrInvalidHeight, err)
	_, err = NewEncoder(-1)
	assert.Equal(t, ErrInvalidHeight, err)
	_, err = NewEncoder(1)
	assert.Equal(t, ErrInvalidHeight, err)
	_, err = NewEncoder(25)
	assert.Equal(t, ErrInvalidHeight, err)

	_, err = NewEncoder(2)
	assert.NoError(t, err)
	_, err = NewEncoder(24)
	assert.NoError(t, err)
}

func TestEmptyInput(t *testing.T) {
	roundTrip(t, "", 8)
}

func TestDecodeRejectsShortEnvelope(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.Equal(t, ErrCorrupt, err)
}

func TestDecodeRejectsOversizedBitLength(t *testing.T) {
	env := encodeEnvelope([]byte{0xFF}, 1000) // claims far more bits than one byte holds
	_, err := Decode(env)
	assert.Equal(t, ErrCorrupt, err)
}

// TestRoundTripVariousContent exercises repeats, palindromic stretches,
// and runs of a single base together across several heights.
func TestRoundTripVariousContent(t *testing.T) {
	inputs := []string{
		"A",
		"ACTG",
		"ACTGACTGACTGACTG",
		"GGGGGGGGGGGGGGGG",
		"ACGTACGTACGTACGTTGCATGCATGCATGCA",
		"ATATATATATATATATATATATATATATATAT",
	}
	for _, s := range inputs {
		for _, h := range []int{2, 4, 6} {
			roundTrip(t, s, h)
		}
	}
}
