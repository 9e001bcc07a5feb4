/*
Package bleveadapter makes the analysis profiles available to bleve.

Every standard profile is registered as a bleve tokenizer, named after the
profile with a prefix of "mb_" and underscores for dashes: "mb_entity_name",
"mb_title", "mb_keyword_exact" and so on. As profiles include their filters,
a bleve analyzer using such a tokenizer needs no further token filters.
NewIndexMapping creates an index mapping with one custom analyzer per
profile, and a field mapping for every field of an analyzer.Registry.

bleve calls tokenizers concurrently. Tokenize borrows a private
analyzer.Analyzer from a pool for every call.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package bleveadapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.bleve'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.bleve")
}

// MaxTokenLengthKey is the tokenizer configuration key for the maximum token
// length, in runes.
const MaxTokenLengthKey = "max_token_length"

// TokenizerName returns the bleve tokenizer name of a profile.
func TokenizerName(p *analyzer.Profile) string {
	return "mb_" + strings.ReplaceAll(p.Name, "-", "_")
}

// AnalyzerName returns the name of the custom analyzer NewIndexMapping
// defines for a profile.
func AnalyzerName(p *analyzer.Profile) string {
	return TokenizerName(p) + "_analyzer"
}

func init() {
	for _, name := range analyzer.ProfileNames() {
		p, _ := analyzer.ProfileByName(name)
		registry.RegisterTokenizer(TokenizerName(p), constructor(p))
	}
}

func constructor(p *analyzer.Profile) registry.TokenizerConstructor {
	return func(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
		maxLen := tokenizer.DefaultMaxTokenLength
		if v, ok := config[MaxTokenLengthKey]; ok {
			n, ok := v.(float64) // JSON number
			if !ok || n < 1 {
				return nil, fmt.Errorf("%s: invalid %s %v", TokenizerName(p), MaxTokenLengthKey, v)
			}
			maxLen = int(n)
		}
		return &Tokenizer{pool: poolFor(p, maxLen)}, nil
	}
}

// --- Pools ---------------------------------------------------------------

type poolKey struct {
	profile string
	maxLen  int
}

var (
	poolsMx sync.Mutex
	pools   = make(map[poolKey]*analyzer.Pool)
)

// MaxIdle is the number of idle analyzers kept per pool.
var MaxIdle = 8

// poolFor returns the shared pool for a profile and maximum token length.
func poolFor(p *analyzer.Profile, maxLen int) *analyzer.Pool {
	poolsMx.Lock()
	defer poolsMx.Unlock()
	key := poolKey{p.Name, maxLen}
	if pool, ok := pools[key]; ok {
		return pool
	}
	tracer().Debugf("creating analyzer pool for %s, max token length %d", p.Name, maxLen)
	pool := analyzer.NewPool(context.Background(), p, MaxIdle, analyzer.MaxTokenLength(maxLen))
	pools[key] = pool
	return pool
}

// --- Tokenizer -------------------------------------------------------------

// Tokenizer implements bleve's analysis.Tokenizer for an analysis profile.
type Tokenizer struct {
	pool *analyzer.Pool
}

var _ analysis.Tokenizer = (*Tokenizer)(nil)

// NewTokenizer creates a tokenizer for a profile, with the default maximum
// token length.
func NewTokenizer(p *analyzer.Profile) *Tokenizer {
	return &Tokenizer{pool: poolFor(p, tokenizer.DefaultMaxTokenLength)}
}

// Tokenize is part of interface analysis.Tokenizer. Positions are 1-based
// and respect the position increments of the pipeline. Terms are copied.
func (t *Tokenizer) Tokenize(input []byte) analysis.TokenStream {
	ctx := context.Background()
	a, err := t.pool.Borrow(ctx)
	if err != nil {
		tracer().Errorf("%s: %v", TokenizerName(t.pool.Profile()), err)
		return analysis.TokenStream{}
	}
	defer func() {
		if err := t.pool.Return(ctx, a); err != nil {
			tracer().Errorf("%s: %v", TokenizerName(t.pool.Profile()), err)
		}
	}()
	a.Reset(string(input))
	stream := make(analysis.TokenStream, 0, len(input)/6+1)
	var tok mbsearch.Token
	position := 0
	for a.Next(&tok) {
		position += tok.PosInc
		stream = append(stream, &analysis.Token{
			Term:     append([]byte(nil), tok.Term...),
			Start:    tok.Start,
			End:      tok.End,
			Position: position,
			Type:     tokenType(tok.Kind),
		})
	}
	return stream
}

func tokenType(k mbsearch.Kind) analysis.TokenType {
	switch k {
	case mbsearch.CJ:
		return analysis.Ideographic
	case mbsearch.Num:
		return analysis.Numeric
	}
	return analysis.AlphaNumeric
}

// --- Index mapping ---------------------------------------------------------

// NewIndexMapping creates a bleve index mapping for the fields of reg. It
// defines a custom analyzer for every profile in use and maps every
// registered field to the analyzer of its profile. Unregistered fields use
// the analyzer of the registry's default profile.
func NewIndexMapping(reg *analyzer.Registry) (*mapping.IndexMappingImpl, error) {
	im := mapping.NewIndexMapping()
	for _, p := range reg.Profiles() {
		err := im.AddCustomAnalyzer(AnalyzerName(p), map[string]interface{}{
			"type":      custom.Name,
			"tokenizer": TokenizerName(p),
		})
		if err != nil {
			return nil, fmt.Errorf("defining analyzer for %s: %w", p.Name, err)
		}
	}
	im.DefaultAnalyzer = AnalyzerName(reg.Default())
	for _, field := range reg.Fields() {
		fm := mapping.NewTextFieldMapping()
		fm.Analyzer = AnalyzerName(reg.Lookup(field))
		im.DefaultMapping.AddFieldMappingsAt(field, fm)
	}
	return im, nil
}
