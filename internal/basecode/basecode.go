// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package basecode implements the 2-bit encoding biocompress uses for raw
// base segments: A=11, C=10, T=01, G=00, matching
// biocompress_1/converter.py's base_to_binary/binary_to_base tables.
package basecode

import "github.com/dsnet/golib/errs"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "basecode: " + string(e) }

// ErrInvalidBase reports a byte outside the A/C/T/G alphabet.
var ErrInvalidBase = Error("invalid base")

// encodeLUT maps an A/C/T/G byte to its 2-bit code, held in the low 2 bits
// (bit 1 first, bit 0 second).
var encodeLUT [256]uint8

// decodeLUT maps a 2-bit code (0..3) back to its base byte.
var decodeLUT [4]byte

// validLUT marks which bytes are valid bases.
var validLUT [256]bool

func init() {
	table := []struct {
		base byte
		bits uint8
	}{
		{'A', 0b11},
		{'C', 0b10},
		{'T', 0b01},
		{'G', 0b00},
	}
	for _, e := range table {
		encodeLUT[e.base] = e.bits
		decodeLUT[e.bits] = e.base
		validLUT[e.base] = true
	}
}

// IsValid reports whether b is one of A, C, T, G.
func IsValid(b byte) bool { return validLUT[b] }

// Encode returns the 2-bit code for base b, high bit first.
func Encode(b byte) (hi, lo uint) {
	errs.Assert(IsValid(b), ErrInvalidBase)
	code := encodeLUT[b]
	return uint(code >> 1), uint(code & 1)
}

// Decode returns the base byte for a 2-bit code given as separate bits.
func Decode(hi, lo uint) byte {
	code := uint8(hi<<1 | lo)
	return decodeLUT[code]
}

// Complement returns the Watson-Crick complement of base b (A<->T,
// C<->G), used when matching reverse-complement palindromes.
func Complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		errs.Panic(ErrInvalidBase)
		panic("unreachable")
	}
}
