// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package intcode implements the two self-delimiting positive-integer
// codes biocompress uses on the wire: Fibonacci (Zeckendorf) coding and
// binary-with-escape coding, plus the adaptive field that picks whichever
// is shorter. It is a direct translation of the reference implementation's
// encode_fibonacci/decode_fibonacci/encode_binary/decode_binary
// (biocompress_1/converter.py), restated to stream directly against an
// internal/bitio.Writer/Reader instead of building intermediate bit-strings.
package intcode

import (
	"math/bits"

	"github.com/dsnet/golib/errs"

	"github.com/dsnet/biocompress/internal/bitio"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "intcode: " + string(e) }

// ErrCorrupt reports that a Fibonacci or binary field could not be parsed.
var ErrCorrupt = Error("malformed integer field")

// fibonacciTable holds F_2, F_3, F_4, ... (i.e. 1, 2, 3, 5, 8, ...) up to the
// largest value that fits in a uint64; the first emitted bit corresponds
// to F_2, the lowest-order term Zeckendorf's theorem ever uses.
var fibonacciTable = func() []uint64 {
	t := []uint64{1, 2}
	for {
		next := t[len(t)-1] + t[len(t)-2]
		if next < t[len(t)-1] { // overflow
			return t
		}
		t = append(t, next)
	}
}()

// fibonacciDigits returns the Zeckendorf digits of n (n >= 1), low-order
// first (digits[0] corresponds to F_2), with no trailing terminator.
func fibonacciDigits(n uint64) []byte {
	errs.Assert(n >= 1, Error("fibonacci code requires a positive integer"))

	// Find the largest Fibonacci index whose value does not exceed n.
	hi := 0
	for hi+1 < len(fibonacciTable) && fibonacciTable[hi+1] <= n {
		hi++
	}

	digits := make([]byte, hi+1)
	rem := n
	for i := hi; i >= 0; i-- {
		if fibonacciTable[i] <= rem {
			digits[i] = 1
			rem -= fibonacciTable[i]
		}
	}
	return digits
}

// fibonacciEncodedLen reports how many bits EncodeFibonacci would emit for
// n, including the terminator.
func fibonacciEncodedLen(n uint64) uint {
	return uint(len(fibonacciDigits(n))) + 1
}

// FibonacciEncodedLen reports how many bits EncodeFibonacci would emit for
// n, without writing anything. Used by the matcher's profitability check.
func FibonacciEncodedLen(n uint64) uint {
	return fibonacciEncodedLen(n)
}

// decodeFibonacciDigits sums the Fibonacci values of the set digits, low-order
// first (mirroring fibonacciDigits' layout, with no terminator included).
func decodeFibonacciDigits(digits []byte) uint64 {
	var n uint64
	for i, b := range digits {
		if b == 1 {
			errs.Assert(i < len(fibonacciTable), ErrCorrupt)
			n += fibonacciTable[i]
		}
	}
	return n
}

// EncodeFibonacci writes n (n >= 1) as a Zeckendorf representation,
// low-order digit first, terminated by an extra "1" bit.
func EncodeFibonacci(bw *bitio.Writer, n uint64) {
	digits := fibonacciDigits(n)
	writeBits(bw, digits)
	bw.WriteBit(1) // terminator; together with the last payload "1" forms "11"
}

// DecodeFibonacci reads a Fibonacci-coded positive integer, scanning until
// the terminating "11" pattern (the last payload bit plus the terminator).
func DecodeFibonacci(br *bitio.Reader) uint64 {
	var n uint64
	var idx int
	var prev uint
	for {
		errs.Assert(br.Remaining() > 0, bitio.ErrTruncated)
		bit := br.ReadBit()
		if bit == 1 && prev == 1 {
			return n
		}
		if bit == 1 {
			errs.Assert(idx < len(fibonacciTable), ErrCorrupt)
			n += fibonacciTable[idx]
		}
		prev = bit
		idx++
	}
}

// binaryWidth returns ceil(log2(u)), the number of bits needed to
// represent any value in [0, u).
func binaryWidth(u uint64) uint {
	errs.Assert(u > 0, Error("binary field requires a positive window"))
	if u == 1 {
		return 0
	}
	return uint(bits.Len64(u - 1))
}
