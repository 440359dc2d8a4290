// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsnet/biocompress/internal/bitio"
)

func TestAdaptivePositionRoundTrip(t *testing.T) {
	windows := []uint64{1, 2, 5, 7, 8, 16, 100, 255, 256, 4096, 1 << 20}
	for _, window := range windows {
		var max uint64 = window
		if max > 3000 {
			max = 3000
		}
		for n := uint64(1); n < max; n++ {
			var bw bitio.Writer
			EncodeAdaptivePosition(&bw, n, window)
			data, nbits := bw.PackToBytes()
			assert.Equal(t, int64(AdaptivePositionLen(n, window)), nbits, "window=%d n=%d", window, n)

			br := bitio.NewReader(data, nbits)
			got := DecodeAdaptivePosition(br, window)
			assert.Equal(t, n, got, "window=%d n=%d", window, n)
			assert.Equal(t, nbits, br.Pos(), "window=%d n=%d: decoder should consume the whole field", window, n)
		}
	}
}

// TestAdaptivePositionPrefersFibonacciOnTie exercises the tie-break rule
// directly: when the Fibonacci-plus-marker and binary encodings are the
// same length, the encoder picks Fibonacci.
func TestAdaptivePositionPrefersFibonacciOnTie(t *testing.T) {
	found := false
	for window := uint64(2); window < 2000; window++ {
		for n := uint64(1); n < window; n++ {
			binLen := binaryEncodedLen(n, window)
			fibLen := fibonacciEncodedLen(n) + 1
			if fibLen == binLen {
				found = true
				var bw bitio.Writer
				EncodeAdaptivePosition(&bw, n, window)
				_, nbits := bw.PackToBytes()

				var fbw bitio.Writer
				EncodeFibonacci(&fbw, n)
				fbw.WriteBit(0)
				wantData, wantBits := fbw.PackToBytes()

				gotData, gotBits := bw.PackToBytes()
				_ = nbits
				assert.Equal(t, wantBits, gotBits, "window=%d n=%d", window, n)
				assert.Equal(t, wantData, gotData, "window=%d n=%d", window, n)
			}
		}
	}
	assert.True(t, found, "test setup should exercise at least one real tie")
}

// TestAdaptivePositionDecodeBranches drives all three branches of
// DecodeAdaptivePosition explicitly: a field with no "11" run at all (plain
// binary), a Fibonacci code disambiguated by a "0" marker, and a binary
// field whose "11" run needed an escape bit, disambiguated by a "1" marker.
func TestAdaptivePositionDecodeBranches(t *testing.T) {
	window := uint64(16) // k = 4

	var noRun uint64 = ^uint64(0)
	var fibCode uint64 = ^uint64(0)
	var escaped uint64 = ^uint64(0)
	for n := uint64(1); n < 16; n++ {
		bits := binaryDigits(n, window)
		fibLen := fibonacciEncodedLen(n) + 1
		binLen := binaryEncodedLen(n, window)
		if findElevenRun(bits) == -1 && fibLen > binLen && noRun == ^uint64(0) {
			noRun = n
		}
		if n > 0 && fibLen <= binLen && fibCode == ^uint64(0) {
			fibCode = n
		}
		if findElevenRun(bits) != -1 && fibLen > binLen && escaped == ^uint64(0) {
			escaped = n
		}
	}
	assert.NotEqual(t, ^uint64(0), noRun, "no plain-binary candidate found")
	assert.NotEqual(t, ^uint64(0), fibCode, "no fibonacci candidate found")
	assert.NotEqual(t, ^uint64(0), escaped, "no escaped-binary candidate found")

	for _, n := range []uint64{noRun, fibCode, escaped} {
		var bw bitio.Writer
		EncodeAdaptivePosition(&bw, n, window)
		data, nbits := bw.PackToBytes()
		br := bitio.NewReader(data, nbits)
		assert.Equal(t, n, DecodeAdaptivePosition(br, window), "n=%d", n)
	}
}
