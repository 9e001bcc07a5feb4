package filter

import "github.com/npillmayer/mbsearch"

// ZeroesFilter strips leading '0' characters from token text, as used for
// track and medium numbers. With all=false a single leading zero is
// removed, otherwise all of them. A term consisting of zeroes only keeps
// its last zero.
type ZeroesFilter struct {
	base
	all bool
}

// NewZeroesFilter creates a filter stripping leading zeroes.
func NewZeroesFilter(all bool) *ZeroesFilter {
	return &ZeroesFilter{all: all}
}

// Next is part of interface mbsearch.TokenSource.
func (f *ZeroesFilter) Next(tok *mbsearch.Token) bool {
	if !f.next(tok) {
		return false
	}
	n := 0
	for n < len(tok.Term)-1 && tok.Term[n] == '0' {
		n++
		if !f.all {
			break
		}
	}
	if n > 0 {
		tok.Term = append(tok.Term[:0], tok.Term[n:]...)
	}
	return true
}
