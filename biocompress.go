// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package biocompress implements a lossless compressor for DNA sequences
// over the {A, C, T, G} alphabet. It exploits two forms of genomic
// redundancy against the already-scanned prefix of the input: exact
// repeats ("factors") and reverse-complement repeats ("palindromes",
// where the complement is A<->T, C<->G). Everything not covered by a long
// enough repeat is emitted as 2-bit-coded raw bases.
//
// This is a direct translation of the biocompress_1 reference
// implementation (AGCT_tree.py, compressor.py, converter.py,
// decompressor.py), restructured as an encoder/decoder pair with no
// process-wide state, in the shape of flate.Reader/flate.NewReader.
package biocompress

import (
	"encoding/binary"

	"github.com/dsnet/golib/errs"
)

// Encode compresses s using a fresh Encoder with k-mer depth h. It is a
// convenience wrapper around NewEncoder followed by Encode.
func Encode(s string, h int) ([]byte, error) {
	e, err := NewEncoder(h)
	if err != nil {
		return nil, err
	}
	return e.Encode(s)
}

// Decode decompresses data produced by Encode or Encoder.Encode.
func Decode(data []byte) (string, error) {
	return NewDecoder().Decode(data)
}

// encodeEnvelope wraps packed bits with their logical bit length so
// Decode can operate on a single self-contained []byte, storing the bit
// length explicitly rather than relying on the input being read from a
// file of known length.
func encodeEnvelope(data []byte, nbits int64) []byte {
	out := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(out[:8], uint64(nbits))
	copy(out[8:], data)
	return out
}

// decodeEnvelope inverts encodeEnvelope, panicking with ErrCorrupt (to be
// caught by the caller's errRecover) if data is too short to hold the
// length prefix or doesn't hold enough bits for the bit length it claims.
func decodeEnvelope(data []byte) (payload []byte, nbits int64) {
	errs.Assert(len(data) >= 8, ErrCorrupt)
	nbits = int64(binary.BigEndian.Uint64(data[:8]))
	payload = data[8:]
	errs.Assert(nbits >= 0 && nbits <= int64(len(payload))*8, ErrCorrupt)
	return payload, nbits
}
