// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package biocompress

import "github.com/dsnet/golib/errs"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "biocompress: " + string(e) }

var (
	// ErrCorrupt reports that a compressed stream could not be parsed.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrInvalidInput reports that a plain-text input to Encode was not a
	// string over the {A, C, T, G} alphabet.
	ErrInvalidInput error = Error("input contains a byte outside of A, C, T, G")

	// ErrInvalidHeight reports that NewEncoder was given an H outside
	// [minHeight, maxHeight].
	ErrInvalidHeight error = Error("height must be between 2 and 24")
)

// errRecover is the deferred panic/recover boundary every exported
// Encode/Decode method installs, so internal helpers can use
// github.com/dsnet/golib/errs's Assert/Panic instead of threading error
// returns through every call, mirroring flate/common.go's and
// brotli/error.go's identical hand-rolled errRecover — promoted here to
// the shared helper since this package has no sibling subsystem that
// would justify copying the three-line switch more than once.
func errRecover(err *error) {
	errs.Recover(err)
}
