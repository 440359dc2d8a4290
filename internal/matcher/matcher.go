// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package matcher implements the per-position candidate selection that
// drives biocompress's compression: for every input position it chooses
// between a factor reference (an exact repeat of an earlier substring), a
// palindrome reference (a repeat of the Watson-Crick complement of an
// earlier substring), or a raw base run, extending beyond the index's
// fixed depth and checking profitability against emitting raw bases
// outright. It is a direct translation of
// biocompress_1/compressor.py's longest_factor_or_palindrome,
// extended_search and process, together with converter.py's encode_factor
// profitability check.
package matcher

import (
	"github.com/dsnet/biocompress/internal/basecode"
	"github.com/dsnet/biocompress/internal/bitio"
	"github.com/dsnet/biocompress/internal/intcode"
	"github.com/dsnet/biocompress/internal/kmerindex"
)

// Kind distinguishes a factor reference from a palindrome reference.
type Kind uint

const (
	Factor Kind = iota
	Palindrome
)

// Result is the outcome of matching at a single input position.
type Result struct {
	// Raw reports whether this position should be emitted as raw bases
	// (either no candidate was found, or the profitability check rejected
	// one). RawBases holds exactly Length bases to emit in that case.
	Raw      bool
	RawBases string

	// The following are valid only when Raw is false.
	Kind Kind
	// Position is the factor's absolute match start p, or the
	// palindrome's relative offset delta = i - p. Never pre-adjusted for
	// the wire format's +1 bias; callers apply that at encode time.
	Position int

	Length int
}

// Find chooses the match candidate for position i in s, given a k-mer
// index already populated with every position strictly before i. height
// must equal the index's configured depth. It does not mutate idx; the
// caller is responsible for calling idx.Insert after consuming the
// result, so the index never contains position i itself while Find(i,
// ...) is choosing a candidate for it.
func Find(s string, i, height int, idx *kmerindex.Index) Result {
	n := len(s)
	if i+height > n {
		return Result{Raw: true, RawBases: s[i : i+1], Length: 1}
	}

	window := s[i : i+height]
	factorPos, factorLen, haveFactor := findFactor(s, i, height, idx, window)
	palPos, palLen, havePalindrome := findPalindrome(s, i, height, idx, window)

	var result Result
	switch {
	case haveFactor && havePalindrome:
		if factorLen >= palLen {
			result = Result{Kind: Factor, Position: factorPos, Length: factorLen}
		} else {
			result = Result{Kind: Palindrome, Position: palPos, Length: palLen}
		}
	case haveFactor:
		result = Result{Kind: Factor, Position: factorPos, Length: factorLen}
	case havePalindrome:
		result = Result{Kind: Palindrome, Position: palPos, Length: palLen}
	default:
		return Result{Raw: true, RawBases: s[i : i+1], Length: 1}
	}

	if !profitable(result, i) {
		return Result{Raw: true, RawBases: reconstruct(s, i, result), Length: result.Length}
	}
	return result
}

func findFactor(s string, i, height int, idx *kmerindex.Index, window string) (pos, length int, ok bool) {
	positions, depth, found := idx.Lookup(window)
	if !found || depth != height {
		return 0, 0, false
	}
	bestPos, bestExt := positions[0], extend(s, i, positions[0], height, false)
	for _, p := range positions[1:] {
		if ext := extend(s, i, p, height, false); ext > bestExt {
			bestExt, bestPos = ext, p
		}
	}
	return bestPos, height + bestExt, true
}

func findPalindrome(s string, i, height int, idx *kmerindex.Index, window string) (delta, length int, ok bool) {
	complement := complementOf(window)
	positions, depth, found := idx.Lookup(complement)
	if !found {
		return 0, 0, false
	}
	if depth != height {
		// Short palindrome: record as-is, no extension attempted.
		p := positions[0]
		return i - p, depth, true
	}
	bestPos, bestExt := positions[0], extend(s, i, positions[0], height, true)
	for _, p := range positions[1:] {
		if ext := extend(s, i, p, height, true); ext > bestExt {
			bestExt, bestPos = ext, p
		}
	}
	return i - bestPos, height + bestExt, true
}

// extend counts how many characters beyond the fixed-depth window continue
// to match, starting right after it. For a factor this is an exact
// comparison; for a palindrome it compares the complement of s's
// continuation against the earlier occurrence's continuation.
func extend(s string, i, p, height int, palindrome bool) int {
	n := len(s)
	a, b := i+height, p+height
	count := 0
	for a < n {
		sa := s[a]
		if palindrome {
			sa = basecode.Complement(sa)
		}
		if sa != s[b] {
			break
		}
		count++
		a++
		b++
	}
	return count
}

func complementOf(window string) string {
	buf := make([]byte, len(window))
	for i := 0; i < len(window); i++ {
		buf[i] = basecode.Complement(window[i])
	}
	return string(buf)
}

// reconstruct rebuilds the actual bases a reference would have copied, for
// use when the profitability check rewrites it to raw.
func reconstruct(s string, i int, r Result) string {
	if r.Kind == Factor {
		return s[r.Position : r.Position+r.Length]
	}
	start := i - r.Position
	window := s[start : start+r.Length]
	return complementOf(window)
}

// profitable reports whether a reference is worth keeping: its encoded
// bit length must be strictly less than 2*length, the cost of emitting
// that many bases directly.
func profitable(r Result, i int) bool {
	return uint64(EncodedLen(r, i)) < 2*uint64(r.Length)
}

// positionWindow widens the raw cursor i into the upper bound passed to the
// adaptive position codec. The encoded position is p+1 for a factor (p <
// i, so p+1 <= i) or delta+1 for a palindrome (delta <= i, so delta+1 <=
// i+1): the largest value ever encoded is i+1, one more than the cursor
// itself. biocompress_1/converter.py uses ceil(log2(i)) directly and is
// one bit short whenever i is an exact power of two (or i==1); widening
// to i+2 guarantees 2^k > i+1 always, so every reachable position value
// fits. See DESIGN.md's Open Question decisions for the derivation.
func positionWindow(i int) uint64 {
	return uint64(i) + 2
}

// EncodedLen reports the bit length of the wire encoding for a reference
// result (1-bit kind, adaptive position field, Fibonacci length), given the
// current absolute cursor i (the window for the adaptive position field).
func EncodedLen(r Result, i int) uint {
	return 1 + intcode.AdaptivePositionLen(uint64(r.Position)+1, positionWindow(i)) + intcode.FibonacciEncodedLen(uint64(r.Length))
}

// EncodeReference writes a non-raw Result to bw as
// kind-bit ∥ position-field ∥ Fibonacci-length.
func EncodeReference(bw *bitio.Writer, r Result, i int) {
	if r.Kind == Palindrome {
		bw.WriteBit(1)
	} else {
		bw.WriteBit(0)
	}
	intcode.EncodeAdaptivePosition(bw, uint64(r.Position)+1, positionWindow(i))
	intcode.EncodeFibonacci(bw, uint64(r.Length))
}

// DecodeReference reads one reference back from br. cursor is the
// decode-time equivalent of the encoder's cursor: the logical output
// length plus the accumulated length of earlier references already
// decoded in this segment (the same quantity EncodeReference's i held at
// encode time).
func DecodeReference(br *bitio.Reader, cursor uint64) Result {
	kindBit := br.ReadBit()
	kind := Factor
	if kindBit == 1 {
		kind = Palindrome
	}
	position := intcode.DecodeAdaptivePosition(br, positionWindow(int(cursor)))
	length := intcode.DecodeFibonacci(br)
	return Result{
		Kind:     kind,
		Position: int(position) - 1,
		Length:   int(length),
	}
}
