package tokenizer

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/mbsearch"
)

// Keyword is a tokenizer emitting its complete input, with leading and
// trailing blanks removed, as a single token. An input consisting of blanks
// only produces no token.
type Keyword struct {
	reader  io.RuneReader
	sreader *strings.Reader
	correct func(int) int
	changed func(int, int) bool
	buf     []byte
	done    bool
	err     error
}

var _ Interface = (*Keyword)(nil)

// NewKeyword creates a keyword tokenizer. Of the options, only Corrector and
// Substitutions are respected.
func NewKeyword(opts ...Option) *Keyword {
	SetupClasses()
	var t Tokenizer
	for _, opt := range opts {
		opt(&t)
	}
	return &Keyword{correct: t.correct, changed: t.changed}
}

// Init binds the tokenizer to a new input source.
func (k *Keyword) Init(reader io.RuneReader) {
	if reader == nil {
		reader = strings.NewReader("")
	}
	k.reader = reader
	k.buf = k.buf[:0]
	k.done = false
	k.err = nil
}

// Reset binds the tokenizer to a new input text.
func (k *Keyword) Reset(text string) {
	if k.sreader == nil {
		k.sreader = strings.NewReader(text)
	} else {
		k.sreader.Reset(text)
	}
	k.Init(k.sreader)
}

// Err returns the first non-EOF error that was encountered by the tokenizer.
func (k *Keyword) Err() error {
	return k.err
}

// Next fills tok with the trimmed input on the first call and returns false
// afterwards.
func (k *Keyword) Next(tok *mbsearch.Token) bool {
	if k.reader == nil {
		k.err = ErrNotInitialized
		return false
	}
	if k.done {
		return false
	}
	k.done = true
	start, end, endOffset, offset := -1, 0, 0, 0
	alnum := false
	for {
		r, size, err := k.reader.ReadRune()
		if err != nil {
			if err != io.EOF {
				k.err = err
			}
			break
		}
		c := ClassForRune(r)
		if c != SpaceClass {
			if start < 0 {
				start = offset
			}
			alnum = alnum || isAlnum(c) || c == IdeographClass
			k.buf = utf8.AppendRune(k.buf, r)
			end = len(k.buf)
			endOffset = offset + size
		} else if start >= 0 {
			k.buf = utf8.AppendRune(k.buf, r)
		}
		offset += size
	}
	if start < 0 {
		return false
	}
	// buf holds the text from the first non-blank, we only need to cut off
	// trailing blanks
	tok.Term = append(tok.Term[:0], k.buf[:end]...)
	tok.Kind = mbsearch.AlphaNum
	if !alnum {
		tok.Kind = mbsearch.ControlAndPunctuation
	}
	tok.Start, tok.End = start, endOffset
	tok.Substituted = k.changed != nil && k.changed(tok.Start, tok.End)
	if k.correct != nil {
		tok.Start, tok.End = k.correct(tok.Start), k.correct(tok.End)
	}
	tok.PosInc = 1
	return true
}
