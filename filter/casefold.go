package filter

import (
	"unicode/utf8"

	"github.com/npillmayer/mbsearch"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Large Hiragana mapped to their small forms, so that large and small kana
// match each other the way upper and lower case letters do.
var smallKana = map[rune]rune{
	'あ': 'ぁ', 'い': 'ぃ', 'う': 'ぅ', 'え': 'ぇ', 'お': 'ぉ', 'つ': 'っ',
	'や': 'ゃ', 'ゆ': 'ゅ', 'よ': 'ょ', 'わ': 'ゎ', 'か': 'ゕ', 'け': 'ゖ',
}

// CaseFoldFilter lower-cases token text, language independently. Unless
// created with NewLowercase, it additionally maps large Hiragana to small
// Hiragana.
type CaseFoldFilter struct {
	base
	lower cases.Caser
	kana  bool
	buf   []byte
}

// NewCaseFoldFilter creates a case folding filter including the mapping of
// large to small Hiragana.
func NewCaseFoldFilter() *CaseFoldFilter {
	return &CaseFoldFilter{
		lower: cases.Lower(language.Und, cases.HandleFinalSigma(false)),
		kana:  true,
	}
}

// NewLowercase creates a plain lower-casing filter.
func NewLowercase() *CaseFoldFilter {
	f := NewCaseFoldFilter()
	f.kana = false
	return f
}

// Next is part of interface mbsearch.TokenSource.
func (f *CaseFoldFilter) Next(tok *mbsearch.Token) bool {
	if !f.next(tok) {
		return false
	}
	if isASCII(tok.Term) {
		for i, c := range tok.Term {
			if 'A' <= c && c <= 'Z' {
				tok.Term[i] = c + 'a' - 'A'
			}
		}
		return true
	}
	f.buf = apply(f.lower, f.buf, tok.Term)
	if f.kana {
		tok.Term = tok.Term[:0]
		for i := 0; i < len(f.buf); {
			r, size := utf8.DecodeRune(f.buf[i:])
			i += size
			if s, ok := smallKana[r]; ok {
				r = s
			}
			tok.Term = utf8.AppendRune(tok.Term, r)
		}
		return true
	}
	tok.Term = append(tok.Term[:0], f.buf...)
	return true
}
