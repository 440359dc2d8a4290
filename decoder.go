// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package biocompress

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/biocompress/internal/basecode"
	"github.com/dsnet/biocompress/internal/bitio"
	"github.com/dsnet/biocompress/internal/intcode"
	"github.com/dsnet/biocompress/internal/matcher"
)

// Decoder reconstructs strings encoded by Encoder. It is parameter-free:
// H only shapes the encoder's matching behavior, never the wire format
// itself, so the decoder needs no configuration at all.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Decode inverts Encoder.Encode.
func (d *Decoder) Decode(data []byte) (s string, err error) {
	defer errRecover(&err)

	payload, nbits := decodeEnvelope(data)
	br := bitio.NewReader(payload, nbits)

	var out []byte
	expectRaw := true
	for br.Remaining() > 0 {
		count := intcode.DecodeFibonacci(br)
		if expectRaw {
			for k := uint64(0); k < count; k++ {
				hi := br.ReadBit()
				lo := br.ReadBit()
				out = append(out, basecode.Decode(hi, lo))
			}
		} else {
			refs := make([]matcher.Result, count)
			cursor := uint64(len(out))
			for k := range refs {
				refs[k] = matcher.DecodeReference(br, cursor)
				cursor += uint64(refs[k].Length)
			}
			for _, ref := range refs {
				applyReference(&out, ref)
			}
		}
		expectRaw = !expectRaw
	}
	return string(out), nil
}

// applyReference appends the L characters a factor or palindrome
// reference describes to out. Both kinds copy byte-by-byte rather than in
// bulk: biocompress_1/decompressor.py's decode_factors does the same,
// which matters whenever a reference overlaps the range it is itself
// appending to (e.g. a run of a single repeated base encoded as one
// self-referential factor). A palindrome's source start is anchored to the
// output length as it stood before this reference's own appends; when its
// length exceeds its offset, the copy likewise runs on into bytes this
// reference has just appended.
func applyReference(out *[]byte, r matcher.Result) {
	switch r.Kind {
	case matcher.Factor:
		p := r.Position
		errs.Assert(p >= 0 && p < len(*out), ErrCorrupt)
		for i := 0; i < r.Length; i++ {
			errs.Assert(p+i < len(*out), ErrCorrupt)
			*out = append(*out, (*out)[p+i])
		}
	case matcher.Palindrome:
		delta := r.Position
		errs.Assert(delta > 0 && delta <= len(*out), ErrCorrupt)
		base := len(*out) // fixed for the whole reference; see decoder.go's applyReference doc
		for i := 0; i < r.Length; i++ {
			src := base - delta + i
			errs.Assert(src >= 0 && src < len(*out), ErrCorrupt)
			*out = append(*out, basecode.Complement((*out)[src]))
		}
	default:
		errs.Panic(ErrCorrupt)
	}
}
