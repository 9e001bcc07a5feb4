/*
Package tokenizer splits text into typed tokens.

Tokenizer is a maximal-munch scanner. Whitespace always separates tokens.
Within a run of non-blank characters, every Han ideograph is a token of its
own (kind CJ), while all other characters form a single token. That token is
classified by a set of rules (see RuleSet in package mbsearch): acronyms
("R.E.S."), English contractions ("There's"), host names and e-mail
addresses, and number-like codes (UUIDs, catalog numbers). Runs of
letters and digits become AlphaNum tokens, runs of pure punctuation become
ControlAndPunctuation tokens, and everything else is AlphaNumAndPunctuation.

Typical Usage

	tok := tokenizer.New(tokenizer.MaxTokenLength(128))
	tok.Reset("Simon & Garfunkel")
	var t mbsearch.Token
	for tok.Next(&t) {
	    // do something with t
	}

Tokenizers re-use their buffers between calls to Init/Reset and are not
safe for concurrent use.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tokenizer

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.tokenizer'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.tokenizer")
}

// DefaultMaxTokenLength is the default maximum length of a token, in runes.
const DefaultMaxTokenLength = 255

// ErrNotInitialized is returned if a tokenizer's Next-function is called without
// first setting an input source.
var ErrNotInitialized = errors.New("tokenizer not initialized; must call Init(...) first")

// Interface is the common interface of tokenizers in this package.
type Interface interface {
	mbsearch.TokenSource
	Init(io.RuneReader)
	Reset(string)
	Err() error
}

// Tokenizer splits text into typed tokens. Create one with New.
type Tokenizer struct {
	reader  io.RuneReader   // where we get the next runes from
	sreader *strings.Reader // re-used by Reset()
	rules   *mbsearch.RuleSet
	maxLen  int             // maximum token length in runes
	correct func(int) int   // offset correction
	runes   []rune          // current chunk of non-blank text
	classes []int           // character classes of runes
	pos     []int           // byte positions of runes, plus end position
	partEnd int             // end of last emitted part within chunk
	offset  int             // byte position of next rune to read
	skipped int             // dropped tokens since last emitted token
	err     error
	atEOF   bool
	changed func(int, int) bool // substitutions within a span
}

var _ Interface = (*Tokenizer)(nil)

// Option configures a tokenizer.
type Option func(*Tokenizer)

// MaxTokenLength sets the maximum length of a token, in runes. Longer tokens
// are dropped. Values < 1 are ignored.
func MaxTokenLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.maxLen = n
		}
	}
}

// Corrector sets a function to map offsets of the input text to offsets of
// another text. Usually this is a charmap.Mapper's Correct method, mapping
// back to the text before substitution.
func Corrector(correct func(int) int) Option {
	return func(t *Tokenizer) {
		t.correct = correct
	}
}

// Substitutions sets a function reporting whether the span [from, to) of the
// input text contains substituted characters, usually a charmap.Mapper's
// Substituted method. Tokens covering such a span are flagged as Substituted.
func Substitutions(changed func(from, to int) bool) Option {
	return func(t *Tokenizer) {
		t.changed = changed
	}
}

// New creates a tokenizer. Before using it, clients have to call Init or
// Reset.
func New(opts ...Option) *Tokenizer {
	SetupClasses()
	t := &Tokenizer{
		rules:   newRuleSet(),
		maxLen:  DefaultMaxTokenLength,
		runes:   make([]rune, 0, 64),
		classes: make([]int, 0, 64),
		pos:     make([]int, 0, 65),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init binds the tokenizer to a new input source, re-using all internal
// buffers.
func (t *Tokenizer) Init(reader io.RuneReader) {
	if reader == nil {
		reader = strings.NewReader("")
	}
	t.reader = reader
	t.runes = t.runes[:0]
	t.classes = t.classes[:0]
	t.pos = t.pos[:0]
	t.partEnd = 0
	t.offset = 0
	t.skipped = 0
	t.err = nil
	t.atEOF = false
}

// Reset binds the tokenizer to a new input text, re-using all internal
// buffers.
func (t *Tokenizer) Reset(text string) {
	if t.sreader == nil {
		t.sreader = strings.NewReader(text)
	} else {
		t.sreader.Reset(text)
	}
	t.Init(t.sreader)
}

// Err returns the first non-EOF error that was encountered by the tokenizer.
func (t *Tokenizer) Err() error {
	return t.err
}

// Next fills tok with the next token and returns true, or returns false if
// the input is exhausted or an error occurred.
func (t *Tokenizer) Next(tok *mbsearch.Token) bool {
	if t.reader == nil {
		t.err = ErrNotInitialized
		return false
	}
	for {
		if t.partEnd < len(t.runes) {
			start := t.partEnd
			end := t.nextPart(start)
			t.partEnd = end
			if end-start > t.maxLen {
				tracer().Debugf("dropping token of length %d", end-start)
				t.skipped++
				continue
			}
			t.emit(tok, start, end)
			return true
		}
		if !t.readChunk() {
			return false
		}
	}
}

// readChunk reads the next run of non-blank characters.
func (t *Tokenizer) readChunk() bool {
	t.runes = t.runes[:0]
	t.classes = t.classes[:0]
	t.pos = t.pos[:0]
	t.partEnd = 0
	chunkEnd := t.offset
	for !t.atEOF {
		r, size, err := t.reader.ReadRune()
		if err != nil {
			if err != io.EOF {
				t.err = err
			}
			t.atEOF = true
			break
		}
		c := ClassForRune(r)
		if c == SpaceClass {
			t.offset += size
			if len(t.runes) > 0 {
				break
			}
			continue
		}
		t.runes = append(t.runes, r)
		t.classes = append(t.classes, int(c))
		t.pos = append(t.pos, t.offset)
		t.offset += size
		chunkEnd = t.offset
	}
	if len(t.runes) == 0 {
		return false
	}
	t.pos = append(t.pos, chunkEnd)
	return true
}

// nextPart finds the end of the token starting at position start of the
// current chunk.
func (t *Tokenizer) nextPart(start int) int {
	if CharClass(t.classes[start]) == IdeographClass {
		return start + 1
	}
	end := start + 1
	for end < len(t.runes) && CharClass(t.classes[end]) != IdeographClass {
		end++
	}
	return end
}

func (t *Tokenizer) emit(tok *mbsearch.Token, start, end int) {
	tok.Term = tok.Term[:0]
	for _, r := range t.runes[start:end] {
		tok.Term = utf8.AppendRune(tok.Term, r)
	}
	tok.Kind = t.classify(start, end)
	tok.Start, tok.End = t.pos[start], t.pos[end]
	tok.Substituted = t.changed != nil && t.changed(tok.Start, tok.End)
	if t.correct != nil {
		tok.Start, tok.End = t.correct(tok.Start), t.correct(tok.End)
	}
	tok.PosInc = 1 + t.skipped
	t.skipped = 0
	tracer().Debugf("token %s", tok)
}

func (t *Tokenizer) classify(start, end int) mbsearch.Kind {
	classes := t.classes[start:end]
	if len(classes) == 1 && CharClass(classes[0]) == IdeographClass {
		return mbsearch.CJ
	}
	alnum := 0
	for _, c := range classes {
		if isAlnum(CharClass(c)) {
			alnum++
		}
	}
	switch alnum {
	case 0:
		return mbsearch.ControlAndPunctuation
	case len(classes):
		return mbsearch.AlphaNum
	}
	if kind, ok := t.rules.Match(t.runes[start:end], classes, int(eot)); ok {
		return kind
	}
	return mbsearch.AlphaNumAndPunctuation
}
