package similarity

import (
	"fmt"
	"strings"
)

// Explanation provides a human-readable breakdown of a scoring factor.
type Explanation struct {
	Description string        `json:"description"`
	Value       float32       `json:"value"`
	Details     []Explanation `json:"details,omitempty"`
}

// String renders an explanation as indented text.
func (e Explanation) String() string {
	var sb strings.Builder
	e.render(&sb, 0)
	return sb.String()
}

func (e Explanation) render(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%v = %s\n", e.Value, e.Description)
	for _, d := range e.Details {
		d.render(sb, depth+1)
	}
}

// ExplainNorm returns a breakdown of the length norm for a field.
func (s *Scorer) ExplainNorm(field string, termCount int) Explanation {
	norm := s.Norm(field, termCount)
	exp := Explanation{
		Description: fmt.Sprintf("lengthNorm(field=%s, terms=%d)", field, termCount),
		Value:       norm,
	}
	if r, ok := s.rules[field]; ok && termCount >= r.Threshold {
		exp.Details = append(exp.Details, Explanation{
			Description: fmt.Sprintf("frozen at %d terms", r.Threshold),
			Value:       r.Frozen,
		})
	} else if termCount > 0 {
		exp.Details = append(exp.Details, Explanation{
			Description: "1/sqrt(terms)",
			Value:       defaultNorm(termCount),
		})
	}
	exp.Details = append(exp.Details, Explanation{
		Description: fmt.Sprintf("stored as byte %d", EncodeNorm(norm)),
		Value:       DecodeNorm(EncodeNorm(norm)),
	})
	return exp
}

// ExplainTermFrequency returns a breakdown of the term frequency factor for
// a field.
func (s *Scorer) ExplainTermFrequency(field string, freq float32) Explanation {
	tf := s.FieldTermFrequency(field, freq)
	exp := Explanation{
		Description: fmt.Sprintf("tf(field=%s, freq=%v)", field, freq),
		Value:       tf,
	}
	if s.clamped(field, freq) {
		exp.Details = []Explanation{{
			Description: fmt.Sprintf("clamped at freq=%d (scope %s)", maxFreq, s.tfScope),
			Value:       tf,
		}}
	} else {
		exp.Details = []Explanation{{
			Description: "sqrt(freq)",
			Value:       tf,
		}}
	}
	tracer().Debugf("%s", exp)
	return exp
}
