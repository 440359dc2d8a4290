// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package intcode

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/biocompress/internal/bitio"
)

// EncodeAdaptivePosition writes n (n >= 1) as whichever of the binary (with
// escape) or Fibonacci-plus-marker encodings is shorter for the given
// window (the number of characters already encoded when the reference
// being positioned was generated), preferring Fibonacci on a tie. This
// mirrors biocompress_1/converter.py's encode_factor position selection.
func EncodeAdaptivePosition(bw *bitio.Writer, n, window uint64) {
	binLen := binaryEncodedLen(n, window)
	fibLen := fibonacciEncodedLen(n) + 1 // +1 for the trailing disambiguation marker

	if fibLen <= binLen {
		EncodeFibonacci(bw, n)
		bw.WriteBit(0) // marker: this field was Fibonacci
		return
	}
	EncodeBinary(bw, n, window)
}

// AdaptivePositionLen reports how many bits EncodeAdaptivePosition would
// emit, without writing anything. Used by the matcher's profitability
// check.
func AdaptivePositionLen(n, window uint64) uint {
	binLen := binaryEncodedLen(n, window)
	fibLen := fibonacciEncodedLen(n) + 1
	if fibLen <= binLen {
		return fibLen
	}
	return binLen
}

// DecodeAdaptivePosition inverts EncodeAdaptivePosition. window must equal
// the same value the encoder used: the decoder derives it from the
// logical length of already-decoded output plus the lengths of earlier
// references in the same segment.
//
// This is a direct translation of biocompress_1/decompressor.py's
// parse_number_position: peek the k = ceil(log2(window)) bit window, look
// for the first "11" run, and use one bit of lookahead beyond that run to
// decide whether it is a binary field's escape point or a Fibonacci code's
// terminator.
func DecodeAdaptivePosition(br *bitio.Reader, window uint64) uint64 {
	k := binaryWidth(window)
	if k == 0 {
		return 0
	}

	// Peek up to k+1 bits: the k-bit field plus one bit of lookahead, which
	// covers the worst case where the disambiguating bit lies just past
	// the window (biocompress_1/decompressor.py fetches exactly one more
	// character for the same reason). The peek is clipped to the bits that
	// remain, since a field at the end of the stream may be a plain binary
	// field (no lookahead) or a Fibonacci field shorter than k; each branch
	// below then reads only its own field's bits.
	lookahead := k + 1
	if rem := br.Remaining(); rem < int64(lookahead) {
		lookahead = uint(rem)
	}
	wide := br.PeekBits(lookahead)
	peeked := make([]byte, lookahead)
	for i := uint(0); i < lookahead; i++ {
		peeked[i] = byte((wide >> (lookahead - 1 - i)) & 1)
	}
	field := peeked
	if uint(len(field)) > k {
		field = field[:k]
	}

	idx := findElevenRun(field)
	if idx == -1 {
		br.ReadBits(k)
		return decodeBinaryDigits(field)
	}

	errs.Assert(idx+2 < len(peeked), bitio.ErrTruncated)
	marker := peeked[idx+2]
	if marker == 0 {
		// Fibonacci: code occupies positions [0, idx], terminator at
		// idx+1, disambiguation marker at idx+2.
		br.ReadBits(uint(idx) + 3)
		return decodeFibonacciDigits(peeked[:idx+1])
	}

	// Binary with an escape bit at idx+2; decodeBinaryDigits finds and
	// strips it.
	br.ReadBits(k + 1)
	return decodeBinaryDigits(peeked)
}
