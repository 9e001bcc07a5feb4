/*
Package similarity adjusts relevance scoring for fields aggregating repeated
child entities, such as the aliases of an artist or the releases of a
release group.

The default formula for the length norm, 1/sqrt(#terms), penalizes an
entity for every alias it has. A FieldRule freezes the norm of a field once
the field has reached a typical number of terms. In the same spirit, the term
frequency is clamped at two occurrences, so an entity does not dominate a
result list just because it repeats a name.

All functions of a Scorer are pure and may be called concurrently.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package similarity

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.similarity'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.similarity")
}

// FieldRule freezes the length norm of a field at Frozen as soon as the field
// has Threshold or more terms. Frozen should be the value the default formula
// yields for exactly Threshold terms.
type FieldRule struct {
	Field     string
	Threshold int
	Frozen    float32
}

// Standard rules.
var (
	AliasRule   = FieldRule{Field: "alias", Threshold: 3, Frozen: 0.578}
	ReleaseRule = FieldRule{Field: "release", Threshold: 6, Frozen: 0.408}
)

// Scope determines the fields the term frequency clamp applies to.
type Scope int

const (
	// ScopeGlobal clamps term frequency for all fields.
	ScopeGlobal Scope = iota
	// ScopeRuleFields clamps term frequency only for fields with a FieldRule.
	ScopeRuleFields
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeRuleFields:
		return "rule-fields"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// ScopeFromString parses a scope name as produced by Scope.String.
func ScopeFromString(s string) (Scope, error) {
	switch s {
	case "", "global":
		return ScopeGlobal, nil
	case "rule-fields":
		return ScopeRuleFields, nil
	}
	return ScopeGlobal, fmt.Errorf("unknown term frequency scope %q", s)
}

// maxFreq is the frequency at which term frequency is clamped.
const maxFreq = 2

// Scorer holds field rules. Create one with New; a Scorer is immutable.
type Scorer struct {
	rules   map[string]FieldRule
	tfScope Scope
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithRule adds a field rule. A later rule for the same field replaces an
// earlier one.
func WithRule(rule FieldRule) Option {
	return func(s *Scorer) {
		s.rules[rule.Field] = rule
	}
}

// WithTermFrequencyScope sets the scope of the term frequency clamp.
func WithTermFrequencyScope(scope Scope) Option {
	return func(s *Scorer) {
		s.tfScope = scope
	}
}

// New creates a Scorer. Without any options the Scorer has no field rules
// and clamps term frequency globally.
func New(opts ...Option) *Scorer {
	s := &Scorer{rules: make(map[string]FieldRule)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rule returns the rule for a field, if any.
func (s *Scorer) Rule(field string) (FieldRule, bool) {
	r, ok := s.rules[field]
	return r, ok
}

// TermFrequencyScope returns the scope of the term frequency clamp.
func (s *Scorer) TermFrequencyScope() Scope {
	return s.tfScope
}

// Norm computes the length norm of a field with termCount terms.
func (s *Scorer) Norm(field string, termCount int) float32 {
	return s.NormWithBoost(field, termCount, 1)
}

// NormWithBoost computes the length norm of a field with termCount terms,
// multiplied by an index-time boost.
func (s *Scorer) NormWithBoost(field string, termCount int, boost float32) float32 {
	if termCount <= 0 {
		return 0
	}
	if r, ok := s.rules[field]; ok && termCount >= r.Threshold {
		return boost * r.Frozen
	}
	return boost * defaultNorm(termCount)
}

func defaultNorm(termCount int) float32 {
	return float32(1 / math.Sqrt(float64(termCount)))
}

// TermFrequency computes the term frequency factor for a raw in-field
// frequency: sqrt(freq), but never more than sqrt(2).
func (s *Scorer) TermFrequency(freq float32) float32 {
	if freq >= maxFreq {
		return math.Sqrt2
	}
	return defaultTF(freq)
}

func defaultTF(freq float32) float32 {
	if freq <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(freq)))
}

// FieldTermFrequency computes the term frequency factor for a field. With
// scope ScopeGlobal this is identical to TermFrequency; with scope
// ScopeRuleFields only fields carrying a rule are clamped.
func (s *Scorer) FieldTermFrequency(field string, freq float32) float32 {
	if s.clamped(field, freq) {
		return math.Sqrt2
	}
	return defaultTF(freq)
}

// clamped reports whether the frequency clamp applies to freq in field.
func (s *Scorer) clamped(field string, freq float32) bool {
	if freq < maxFreq {
		return false
	}
	if s.tfScope == ScopeRuleFields {
		_, ok := s.rules[field]
		return ok
	}
	return true
}
