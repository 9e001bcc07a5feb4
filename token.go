package mbsearch

import (
	"fmt"
	"unicode/utf8"
)

// Kind is the type of a token, as classified by the tokenizer. Kinds are
// assigned once and never changed by filters; filters read them to decide
// what to do with a token.
type Kind int8

// Token kinds.
const (
	AlphaNum               Kind = iota // letters and digits
	Apostrophe                         // contraction like "There's"
	Acronym                            // "R.E.S."
	ControlAndPunctuation              // symbols and punctuation only
	AlphaNumAndPunctuation             // letters/digits mixed with punctuation
	Host                               // host name or e-mail address
	Num                                // product codes, UUIDs, decimals
	CJ                                 // single Han ideograph
)

var kindNames = [...]string{
	"<ALPHANUM>",
	"<APOSTROPHE>",
	"<ACRONYM>",
	"<CONTROLANDPUNCTUATION>",
	"<ALPHANUMANDPUNCTUATION>",
	"<HOST>",
	"<NUM>",
	"<CJ>",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("<KIND%d>", int(k))
	}
	return kindNames[k]
}

// KindFromString returns the kind for a type name as produced by Kind.String().
// The second return value is false for unknown names.
func KindFromString(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return AlphaNum, false
}

// Token is a classified span of text.
//
// Start and End are byte offsets into the original text of a field, i.e. the
// text before any character substitution happened. PosInc is the position
// increment relative to the previous token; it is greater than 1 if tokens
// have been dropped in between. Substituted is set if characters of the
// span have been replaced before tokenization; the bytes of Term then do not
// line up with the original text.
type Token struct {
	Term        []byte // term text, mutable
	Kind        Kind   // kind as classified by the tokenizer
	Start       int    // start offset in original text
	End         int    // end offset in original text
	PosInc      int    // position increment
	Substituted bool   // span contains character substitutions
}

// SetTerm replaces the term text, re-using the term buffer.
func (tok *Token) SetTerm(s string) {
	tok.Term = append(tok.Term[:0], s...)
}

// Text returns the term as a newly allocated string.
func (tok *Token) Text() string {
	return string(tok.Term)
}

// Len returns the length of the term in runes.
func (tok *Token) Len() int {
	return utf8.RuneCount(tok.Term)
}

// CopyFrom makes tok a copy of other, re-using tok's term buffer.
func (tok *Token) CopyFrom(other *Token) {
	tok.Term = append(tok.Term[:0], other.Term...)
	tok.Kind = other.Kind
	tok.Start = other.Start
	tok.End = other.End
	tok.PosInc = other.PosInc
	tok.Substituted = other.Substituted
}

func (tok *Token) String() string {
	return fmt.Sprintf("%q%s[%d,%d]+%d", tok.Term, tok.Kind, tok.Start, tok.End, tok.PosInc)
}

// TokenSource is anything producing tokens: tokenizers and filters.
//
// Next fills tok with the next token and returns true, or returns false if
// the source is exhausted. Sources may keep references into their own
// buffers in tok.Term; tok is valid until the next call to Next.
type TokenSource interface {
	Next(tok *Token) bool
}

// Filter is a TokenSource reading from another TokenSource.
//
// SetInput connects a filter to its upstream source. Reset clears any
// buffered state and is called whenever the pipeline is re-bound to new
// input.
type Filter interface {
	TokenSource
	SetInput(TokenSource)
	Reset()
}
