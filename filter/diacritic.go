package filter

import (
	"unicode"

	"github.com/npillmayer/mbsearch"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DiacriticFilter decomposes token text (NFD) and deletes combining
// diacritical marks (U+0300 … U+036F), modifier symbols and modifier letters.
// The text is not re-composed: "bär" → "bar".
//
// Tokens of kind ControlAndPunctuation are passed unchanged, as they may
// consist of modifier symbols only ("^^^").
type DiacriticFilter struct {
	base
	strip transform.Transformer
	buf   []byte
}

// NewDiacriticFilter creates a diacritic folding filter.
func NewDiacriticFilter() *DiacriticFilter {
	return &DiacriticFilter{
		strip: transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isDiacritic))),
	}
}

var combiningDiacriticalMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

func isDiacritic(r rune) bool {
	return unicode.In(r, combiningDiacriticalMarks, unicode.Sk, unicode.Lm)
}

// Next is part of interface mbsearch.TokenSource.
func (f *DiacriticFilter) Next(tok *mbsearch.Token) bool {
	if !f.next(tok) {
		return false
	}
	if tok.Kind == mbsearch.ControlAndPunctuation || isASCII(tok.Term) {
		return true
	}
	f.buf = apply(f.strip, f.buf, tok.Term)
	tok.Term = append(tok.Term[:0], f.buf...)
	return true
}
