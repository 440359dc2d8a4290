// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package intcode

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/biocompress/internal/bitio"
)

// EncodeBinary writes n in k = ceil(log2(window)) bits, zero-padded, with an
// extra "1" inserted immediately after the first "11" run (if any) so the
// field can never be confused with a Fibonacci terminator. This is a direct
// translation of biocompress_1/converter.py's encode_binary.
func EncodeBinary(bw *bitio.Writer, n uint64, window uint64) {
	bits := binaryDigits(n, window)
	escIdx := findElevenRun(bits)
	if escIdx == -1 {
		writeBits(bw, bits)
		return
	}
	writeBits(bw, bits[:escIdx+2])
	bw.WriteBit(1) // escape bit
	writeBits(bw, bits[escIdx+2:])
}

// binaryEncodedLen reports how many bits EncodeBinary would emit for the
// given window, without writing anything (used by the profitability check
// and by the encoder's choice between binary and Fibonacci fields).
func binaryEncodedLen(n, window uint64) uint {
	bits := binaryDigits(n, window)
	if findElevenRun(bits) != -1 {
		return uint(len(bits)) + 1
	}
	return uint(len(bits))
}

// decodeBinaryDigits parses a binary-with-escape bit vector (escape, if
// present, already identified and included verbatim) into its integer
// value, removing the escape bit. This is the streaming equivalent of
// biocompress_1/converter.py's decode_binary, operating on an in-memory bit
// vector rather than a string.
func decodeBinaryDigits(raw []byte) uint64 {
	idx := -1
	for i := 0; i+2 < len(raw); i++ {
		if raw[i] == 1 && raw[i+1] == 1 && raw[i+2] == 1 {
			idx = i
			break
		}
	}
	digits := raw
	if idx != -1 {
		digits = append(append([]byte{}, raw[:idx+2]...), raw[idx+3:]...)
	}
	var v uint64
	for _, b := range digits {
		v = v<<1 | uint64(b)
	}
	return v
}

func binaryDigits(n, window uint64) []byte {
	k := binaryWidth(window)
	errs.Assert(k == 0 || n>>k == 0, Error("value does not fit in binary field width"))
	bits := make([]byte, k)
	for i := uint(0); i < k; i++ {
		bits[k-1-i] = byte((n >> i) & 1)
	}
	return bits
}

func findElevenRun(bits []byte) int {
	for i := 0; i+1 < len(bits); i++ {
		if bits[i] == 1 && bits[i+1] == 1 {
			return i
		}
	}
	return -1
}

func writeBits(bw *bitio.Writer, bits []byte) {
	for _, b := range bits {
		bw.WriteBit(uint(b))
	}
}
