/*
Package charmap substitutes literal character sequences in raw text, before
the text is tokenized.

Substitution tables unify symbols ("&" and "and"), dash and quote variants,
and fold phonetic modifier letters to their base letters. Tables are
compiled once and shared; a Mapper applies a table to one text at a time and
remembers how offsets in the mapped text relate to offsets in the original
text.

	m := charmap.NewMapper(charmap.Merge(charmap.Ampersand, charmap.CharEquivalents))
	mapped := m.Map("Simon & Garfunkel")   // "Simon and Garfunkel"
	start := m.Correct(6)                  // 6
	end := m.Correct(9)                    // 7

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package charmap

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.charmap'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.charmap")
}

// Pair is a literal substitution.
type Pair struct {
	Pattern     string
	Replacement string
}

// P is a shortcut to create a Pair.
func P(pattern, replacement string) Pair {
	return Pair{Pattern: pattern, Replacement: replacement}
}

// Table is a compiled set of substitutions. Tables are immutable and may be
// shared between goroutines.
type Table struct {
	root  *node
	pairs []Pair // in order of insertion, with duplicates resolved
}

// byte trie
type node struct {
	next     map[byte]*node
	repl     string
	terminal bool
}

// NewTable compiles literal substitutions into a table. For duplicate
// patterns the last pair wins; empty patterns are ignored.
func NewTable(pairs ...Pair) *Table {
	t := &Table{root: &node{}}
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if p.Pattern == "" {
			continue
		}
		if i, ok := index[p.Pattern]; ok {
			t.pairs[i] = p
		} else {
			index[p.Pattern] = len(t.pairs)
			t.pairs = append(t.pairs, p)
		}
	}
	for _, p := range t.pairs {
		t.insert(p)
	}
	return t
}

// Merge combines tables into a new one. If more than one table contains a
// pattern, the replacement of the last of those tables wins.
func Merge(tables ...*Table) *Table {
	var pairs []Pair
	for _, t := range tables {
		if t != nil {
			pairs = append(pairs, t.pairs...)
		}
	}
	return NewTable(pairs...)
}

// Len returns the number of substitutions in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pairs)
}

// Pairs returns a copy of the substitutions of t.
func (t *Table) Pairs() []Pair {
	if t == nil {
		return nil
	}
	return append([]Pair(nil), t.pairs...)
}

func (t *Table) insert(p Pair) {
	n := t.root
	for i := 0; i < len(p.Pattern); i++ {
		b := p.Pattern[i]
		if n.next == nil {
			n.next = make(map[byte]*node)
		}
		child, ok := n.next[b]
		if !ok {
			child = &node{}
			n.next[b] = child
		}
		n = child
	}
	n.terminal = true
	n.repl = p.Replacement
}

// longest finds the longest pattern matching text at byte position pos.
// It returns the pattern's length in bytes and its replacement.
func (t *Table) longest(text string, pos int) (int, string) {
	n, length, repl := t.root, 0, ""
	for i := pos; i < len(text) && n.next != nil; i++ {
		child, ok := n.next[text[i]]
		if !ok {
			break
		}
		n = child
		if n.terminal {
			length, repl = i-pos+1, n.repl
		}
	}
	return length, repl
}

// --- Mapper ---------------------------------------------------------------

// Mapper applies a table to a text and keeps track of offset corrections.
// A Mapper is owned by a single pipeline instance and must not be used
// concurrently.
type Mapper struct {
	table       *Table
	buf         []byte
	corrections *treemap.Map // offset in mapped text → cumulative difference
	lastDiff    int          // cumulative difference of last correction point
	origLen     int          // length of original text
	spans       []int        // replaced spans in mapped text, as start/end pairs
}

// NewMapper creates a mapper for table t. A nil or empty table maps every
// text to itself.
func NewMapper(t *Table) *Mapper {
	return &Mapper{
		table:       t,
		corrections: treemap.NewWithIntComparator(),
	}
}

// Table returns the substitution table of m.
func (m *Mapper) Table() *Table {
	return m.table
}

// Map performs a single left-to-right pass over text, replacing at each
// position the longest matching pattern. Replaced sequences never overlap;
// replacement text is not scanned again.
//
// Map resets the offset corrections of any previous call.
func (m *Mapper) Map(text string) string {
	m.Reset()
	m.origLen = len(text)
	if m.table.Len() == 0 {
		return text
	}
	if cap(m.buf) < len(text) {
		m.buf = make([]byte, 0, len(text)+len(text)/4)
	}
	changed := false
	for i := 0; i < len(text); {
		l, repl := m.table.longest(text, i)
		if l == 0 {
			m.buf = append(m.buf, text[i])
			i++
			continue
		}
		changed = true
		m.spans = append(m.spans, len(m.buf), len(m.buf)+len(repl))
		m.buf = append(m.buf, repl...)
		i += l
		m.correct(i, l, len(repl))
	}
	if !changed {
		return text
	}
	mapped := string(m.buf)
	tracer().Debugf("charmap: %q -> %q", text, mapped)
	return mapped
}

// correct records a correction point for a match of inLen bytes ending at
// input position inEnd, replaced by outLen bytes.
func (m *Mapper) correct(inEnd, inLen, outLen int) {
	diff := inLen - outLen
	if diff == 0 {
		return
	}
	prev := m.lastDiff
	outEnd := inEnd - prev // end of the match, in output coordinates
	if diff > 0 {
		// replacement is shorter than the pattern
		m.addCorrection(outEnd-diff, prev+diff)
		return
	}
	// replacement is longer: map the extra bytes back to the end of the match
	for k := 0; k < -diff; k++ {
		m.addCorrection(outEnd+k, prev-k-1)
	}
}

func (m *Mapper) addCorrection(off, cum int) {
	m.corrections.Put(off, cum)
	m.lastDiff = cum
}

// Correct maps an offset into the mapped text back to an offset into the
// original text. The result is monotonic in off and lies within
// [0, len(original)].
func (m *Mapper) Correct(off int) int {
	corrected := off
	if _, cum := m.corrections.Floor(off); cum != nil {
		corrected = off + cum.(int)
	}
	if corrected < 0 {
		return 0
	}
	if corrected > m.origLen {
		return m.origLen
	}
	return corrected
}

// Substituted reports whether a replacement of the last call to Map lies
// within the span [from, to) of the mapped text. Deletions count if they
// happened strictly inside the span.
func (m *Mapper) Substituted(from, to int) bool {
	n := len(m.spans) / 2
	i := sort.Search(n, func(i int) bool { return m.spans[2*i+1] > from })
	return i < n && m.spans[2*i] < to
}

// Reset clears the state of m, keeping its buffers.
func (m *Mapper) Reset() {
	m.buf = m.buf[:0]
	m.spans = m.spans[:0]
	m.corrections.Clear()
	m.lastDiff = 0
	m.origLen = 0
}
