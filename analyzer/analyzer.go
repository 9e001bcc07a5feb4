/*
Package analyzer assembles the analysis pipelines for fields of the search
index.

A Profile names a fixed pipeline: character substitutions, a tokenizer and
an ordered chain of filters. An Analyzer is an instance of a profile, owning
all buffers of the pipeline steps. Analyzers are re-bound to new input with
Reset and never allocate for the pipeline structure afterwards.

Analyzers are not safe for concurrent use. Concurrent clients either create
an analyzer per goroutine or borrow one from a Pool.

The same profile has to be used for indexing a field and for analyzing
queries against that field. A Registry maps field names to profiles.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package analyzer

import (
	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/mbsearch/charmap"
	"github.com/npillmayer/mbsearch/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.analyzer'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.analyzer")
}

// DefaultPositionGap is the default position increment gap between the
// values of a multi-valued field.
const DefaultPositionGap = 100

// Analyzer is an instance of an analysis pipeline. Create one with New.
type Analyzer struct {
	profile *Profile
	mapper  *charmap.Mapper
	tok     tokenizer.Interface
	filters []mbsearch.Filter
	head    mbsearch.TokenSource // last step of the pipeline
	carry   int                  // position increments of dropped tokens
	shift   int                  // offset shift for multi-valued fields
	err     error
}

var _ mbsearch.TokenSource = (*Analyzer)(nil)

// Option configures an Analyzer.
type Option func(*options)

type options struct {
	maxTokenLength int
}

// MaxTokenLength sets the maximum token length, in runes. Longer tokens are
// dropped by the tokenizer.
func MaxTokenLength(n int) Option {
	return func(o *options) {
		o.maxTokenLength = n
	}
}

// New creates an analyzer for a profile. A nil profile is treated as
// EntityName.
func New(profile *Profile, opts ...Option) *Analyzer {
	if profile == nil {
		profile = EntityName
	}
	o := options{maxTokenLength: tokenizer.DefaultMaxTokenLength}
	for _, opt := range opts {
		opt(&o)
	}
	a := &Analyzer{
		profile: profile,
		mapper:  charmap.NewMapper(profile.Table),
	}
	if profile.Keyword {
		a.tok = tokenizer.NewKeyword(
			tokenizer.Corrector(a.mapper.Correct),
			tokenizer.Substitutions(a.mapper.Substituted),
		)
	} else {
		a.tok = tokenizer.New(
			tokenizer.MaxTokenLength(o.maxTokenLength),
			tokenizer.Corrector(a.mapper.Correct),
			tokenizer.Substitutions(a.mapper.Substituted),
		)
	}
	a.head = a.tok
	for _, factory := range profile.Filters {
		f := factory()
		f.SetInput(a.head)
		a.filters = append(a.filters, f)
		a.head = f
	}
	a.tok.Reset("")
	return a
}

// Profile returns the profile a was created for.
func (a *Analyzer) Profile() *Profile {
	return a.profile
}

// Reset binds the analyzer to a new input text, discarding any state of the
// previous input.
func (a *Analyzer) Reset(text string) {
	a.tok.Reset(a.mapper.Map(text))
	for _, f := range a.filters {
		f.Reset()
	}
	a.carry = 0
	a.shift = 0
	a.err = nil
}

// Next fills tok with the next token of the pipeline. Tokens with an empty
// term are skipped; their position increment is added to the next token.
func (a *Analyzer) Next(tok *mbsearch.Token) bool {
	for a.head.Next(tok) {
		if len(tok.Term) == 0 {
			a.carry += tok.PosInc
			continue
		}
		tok.PosInc += a.carry
		a.carry = 0
		tok.Start += a.shift
		tok.End += a.shift
		return true
	}
	if err := a.tok.Err(); err != nil && a.err == nil {
		tracer().Errorf("analyzer %s: %v", a.profile.Name, err)
		a.err = err
	}
	return false
}

// Err returns the first error encountered while reading the input, if any.
func (a *Analyzer) Err() error {
	return a.err
}

// Analyze runs the pipeline over text and returns a copy of all tokens.
func (a *Analyzer) Analyze(text string) []mbsearch.Token {
	a.Reset(text)
	return a.collect(nil, 0)
}

// Terms runs the pipeline over text and returns the terms only.
func (a *Analyzer) Terms(text string) []string {
	tokens := a.Analyze(text)
	terms := make([]string, len(tokens))
	for i := range tokens {
		terms[i] = string(tokens[i].Term)
	}
	return terms
}

// AnalyzeValues analyzes the values of a multi-valued field as a single
// token stream. The first token of every value after the first one gets an
// additional position increment of gap, so phrases never match across
// values. Offsets are relative to the values joined by a single separator
// byte.
func (a *Analyzer) AnalyzeValues(values []string, gap int) []mbsearch.Token {
	var tokens []mbsearch.Token
	offset, pending := 0, 0
	for i, v := range values {
		if i > 0 {
			pending += gap
		}
		a.Reset(v)
		a.shift = offset
		n := len(tokens)
		tokens = a.collect(tokens, pending)
		if len(tokens) > n {
			pending = 0
		}
		offset += len(v) + 1
	}
	return tokens
}

func (a *Analyzer) collect(tokens []mbsearch.Token, gap int) []mbsearch.Token {
	var t mbsearch.Token
	first := true
	for a.Next(&t) {
		var c mbsearch.Token
		c.CopyFrom(&t)
		if first {
			c.PosInc += gap
			first = false
		}
		tokens = append(tokens, c)
	}
	return tokens
}
