/*
Package filter implements the normalization steps of an analysis pipeline.

Every filter reads tokens from an upstream mbsearch.TokenSource and rewrites
them in place. Filters are chained by a profile (see package analyzer):

	script ─▶ type ─▶ (splitter) ─▶ (bigram) ─▶ diacritic ─▶ casefold

Filters own scratch buffers and must not be shared between goroutines.
Unmappable characters are always passed through unchanged; no filter ever
fails on malformed input.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package filter

import (
	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/transform"
)

// tracer traces with key 'mbsearch.filter'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.filter")
}

// base is embedded by filters to connect them to their input.
type base struct {
	input mbsearch.TokenSource
}

// SetInput connects a filter to its upstream token source.
func (b *base) SetInput(src mbsearch.TokenSource) {
	b.input = src
}

// Reset is a no-op for stateless filters.
func (b *base) Reset() {}

func (b *base) next(tok *mbsearch.Token) bool {
	if b.input == nil {
		return false
	}
	return b.input.Next(tok)
}

// --- Helpers ----------------------------------------------------------

// apply runs a transformer over src, writing into dst's storage. If dst is
// too small, a larger buffer is allocated and the transform is retried. On
// any other error src is returned unchanged (copied into dst).
func apply(t transform.Transformer, dst, src []byte) []byte {
	for {
		t.Reset()
		n, _, err := t.Transform(dst[:cap(dst)], src, true)
		switch err {
		case nil:
			return dst[:n]
		case transform.ErrShortDst:
			tracer().Debugf("growing transform buffer from %d bytes", cap(dst))
			dst = make([]byte, 0, 2*cap(dst)+len(src)+8)
		default:
			tracer().Errorf("transform: %v", err)
			return append(dst[:0], src...)
		}
	}
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
