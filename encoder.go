// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package biocompress

import (
	"strings"

	"github.com/dsnet/golib/errs"

	"github.com/dsnet/biocompress/internal/basecode"
	"github.com/dsnet/biocompress/internal/bitio"
	"github.com/dsnet/biocompress/internal/intcode"
	"github.com/dsnet/biocompress/internal/kmerindex"
	"github.com/dsnet/biocompress/internal/matcher"
)

// Encoder compresses strings over the {A, C, T, G} alphabet using a fixed
// k-mer index depth, H.
//
// The zero value is not usable; construct one with NewEncoder. A single
// Encoder may be reused across multiple calls to Encode, each of which
// builds a fresh index (biocompress_1/compressor.py instead holds one
// process-wide index across the whole run; here that state is
// encapsulated per call so concurrent calls don't share or race on it).
type Encoder struct {
	height int
}

// minHeight and maxHeight bound the k-mer index depth NewEncoder will
// accept. Below minHeight the index barely discriminates between
// positions; above maxHeight the trie's node count (on the order of
// 4^(h+1)) becomes impractical for the gain in match length it buys.
const (
	minHeight = 2
	maxHeight = 24
)

// NewEncoder returns an Encoder that indexes k-mers of length h. h must
// fall within [minHeight, maxHeight]; reasonable values are typically
// 11-13.
func NewEncoder(h int) (*Encoder, error) {
	if h < minHeight || h > maxHeight {
		return nil, ErrInvalidHeight
	}
	return &Encoder{height: h}, nil
}

// pendingRef is a reference candidate buffered in the current ref segment,
// along with the cursor (the absolute input position at the time it was
// produced) that its position field was encoded against.
type pendingRef struct {
	result matcher.Result
	cursor int
}

// Encode compresses s, returning the bit-packed wire format: an 8-byte
// big-endian bit-length prefix followed by the packed bytes (the source's
// own format has no such prefix and instead relies on the input file's
// length being known out of band; see DESIGN.md's Open Question decisions
// for why this implementation makes the length explicit).
func (e *Encoder) Encode(s string) (out []byte, err error) {
	defer errRecover(&err)
	errs.Assert(validInput(s), ErrInvalidInput)

	idx := kmerindex.New(e.height)
	var bw bitio.Writer

	var rawBuf strings.Builder
	var refBuf []pendingRef

	flushRaw := func() {
		if rawBuf.Len() == 0 {
			return
		}
		intcode.EncodeFibonacci(&bw, uint64(rawBuf.Len()))
		for i := 0; i < rawBuf.Len(); i++ {
			hi, lo := basecode.Encode(rawBuf.String()[i])
			bw.WriteBit(hi)
			bw.WriteBit(lo)
		}
		rawBuf.Reset()
	}
	flushRef := func() {
		if len(refBuf) == 0 {
			return
		}
		intcode.EncodeFibonacci(&bw, uint64(len(refBuf)))
		for _, pr := range refBuf {
			matcher.EncodeReference(&bw, pr.result, pr.cursor)
		}
		refBuf = refBuf[:0]
	}

	n := len(s)
	for i := 0; i < n; {
		r := matcher.Find(s, i, e.height, idx)
		// Index every position the candidate covers, in order, so the
		// next lookup sees all positions before it.
		for j := i; j < i+r.Length; j++ {
			idx.Insert(s[j:], j)
		}

		if r.Raw {
			flushRef()
			rawBuf.WriteString(r.RawBases)
		} else {
			flushRaw()
			refBuf = append(refBuf, pendingRef{r, i})
		}
		i += r.Length
	}
	flushRaw()
	flushRef()

	data, nbits := bw.PackToBytes()
	return encodeEnvelope(data, nbits), nil
}

func validInput(s string) bool {
	for i := 0; i < len(s); i++ {
		if !basecode.IsValid(s[i]) {
			return false
		}
	}
	return true
}
