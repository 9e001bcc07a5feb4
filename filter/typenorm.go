package filter

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mbsearch"
)

// TypeFilter normalizes punctuation within a token, depending on the token's
// kind:
//
//   Apostrophe              delete apostrophes        "There's" → "Theres"
//   Acronym                 delete dots               "R.E.S."  → "RES"
//   AlphaNumAndPunctuation  delete apostrophes,       "it's'"   → "its"
//                           other punctuation → '-'   "fred!!"  → "fred--"
//
// Tokens of other kinds are passed through unchanged.
type TypeFilter struct {
	base
	buf []byte
}

// NewTypeFilter creates a type normalization filter.
func NewTypeFilter() *TypeFilter {
	return &TypeFilter{}
}

// Next is part of interface mbsearch.TokenSource.
func (f *TypeFilter) Next(tok *mbsearch.Token) bool {
	if !f.next(tok) {
		return false
	}
	switch tok.Kind {
	case mbsearch.Apostrophe:
		tok.Term = deleteByte(tok.Term, '\'')
	case mbsearch.Acronym:
		tok.Term = deleteByte(tok.Term, '.')
	case mbsearch.AlphaNumAndPunctuation:
		f.buf = f.buf[:0]
		for i := 0; i < len(tok.Term); {
			r, size := utf8.DecodeRune(tok.Term[i:])
			i += size
			switch {
			case r == '\'':
			case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.M, r):
				f.buf = utf8.AppendRune(f.buf, r)
			default:
				f.buf = append(f.buf, '-')
			}
		}
		tok.Term = append(tok.Term[:0], f.buf...)
	}
	return true
}

// deleteByte removes every occurrence of an ASCII character c, in place.
func deleteByte(term []byte, c byte) []byte {
	j := 0
	for _, b := range term {
		if b != c {
			term[j] = b
			j++
		}
	}
	return term[:j]
}

// --- Word splitter ----------------------------------------------------

// WordSplitter splits AlphaNumAndPunctuation tokens at hyphens, as produced
// by TypeFilter. Empty parts are dropped, therefore "fred--" results in
// "fred", and "1999-2000" in "1999" and "2000". The first part carries the
// incoming position increment, every following part has an increment of 1.
type WordSplitter struct {
	base
	term   []byte // term of the token being split
	pos    int    // position of next part within term
	kind   mbsearch.Kind
	start  int
	end    int
	posInc int
	mapped bool // source span contains substitutions
	carry  int  // position increments of tokens without any part
	parts  int  // parts emitted for the current token
	active bool
}

// NewWordSplitter creates a word splitter.
func NewWordSplitter() *WordSplitter {
	return &WordSplitter{}
}

// Reset is part of interface mbsearch.Filter.
func (f *WordSplitter) Reset() {
	f.term = f.term[:0]
	f.pos = 0
	f.carry = 0
	f.active = false
}

// Next is part of interface mbsearch.TokenSource.
func (f *WordSplitter) Next(tok *mbsearch.Token) bool {
	for {
		if f.active {
			if f.nextPart(tok) {
				return true
			}
			if f.parts == 0 {
				f.carry += f.posInc
			}
			f.active = false
		}
		if !f.next(tok) {
			return false
		}
		if tok.Kind != mbsearch.AlphaNumAndPunctuation {
			tok.PosInc += f.carry
			f.carry = 0
			return true
		}
		f.term = append(f.term[:0], tok.Term...)
		f.pos, f.parts = 0, 0
		f.kind, f.start, f.end, f.posInc = tok.Kind, tok.Start, tok.End, tok.PosInc
		f.mapped = tok.Substituted
		f.active = true
	}
}

func (f *WordSplitter) nextPart(tok *mbsearch.Token) bool {
	for f.pos < len(f.term) && f.term[f.pos] == '-' {
		f.pos++
	}
	if f.pos >= len(f.term) {
		return false
	}
	from := f.pos
	for f.pos < len(f.term) && f.term[f.pos] != '-' {
		f.pos++
	}
	tok.Term = append(tok.Term[:0], f.term[from:f.pos]...)
	tok.Kind = f.kind
	tok.Start, tok.End = f.start, f.end
	tok.Substituted = f.mapped
	if !f.mapped && len(f.term) == f.end-f.start { // term still aligned with source span
		tok.Start, tok.End = f.start+from, f.start+f.pos
	}
	tok.PosInc = 1
	if f.parts == 0 {
		tok.PosInc = f.posInc + f.carry
		f.carry = 0
	}
	f.parts++
	return true
}
