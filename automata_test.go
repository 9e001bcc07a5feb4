package mbsearch

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const (
	clsA = iota
	clsB
	clsEOT
)

// a+b
func rule_AB(rec *Recognizer, r rune, cls int) NfaStateFn {
	if cls != clsA {
		return DoAbort(rec)
	}
	rec.MatchLen++
	return cont_AB
}

func cont_AB(rec *Recognizer, r rune, cls int) NfaStateFn {
	switch cls {
	case clsA:
		rec.MatchLen++
		return cont_AB
	case clsB:
		rec.MatchLen++
		return finish_AB
	}
	return DoAbort(rec)
}

func finish_AB(rec *Recognizer, r rune, cls int) NfaStateFn {
	if cls == clsEOT {
		return DoAccept(rec)
	}
	return DoAbort(rec)
}

// a+
func rule_A(rec *Recognizer, r rune, cls int) NfaStateFn {
	switch cls {
	case clsA:
		rec.MatchLen++
		return rule_A
	case clsEOT:
		if rec.MatchLen > 0 {
			return DoAccept(rec)
		}
	}
	return DoAbort(rec)
}

func classesOf(s string) ([]rune, []int) {
	runes := []rune(s)
	classes := make([]int, len(runes))
	for i, r := range runes {
		if r == 'b' {
			classes[i] = clsB
		}
	}
	return runes, classes
}

func TestRecognizerPool(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch")
	defer teardown()
	//
	rec := NewPooledRecognizer(7, rule_A)
	if rec.Expect != 7 || rec.Done() {
		t.Errorf("expected fresh recognizer, have %s", rec)
	}
	rec.RuneEvent('a', clsA)
	rec.RuneEvent(0, clsEOT)
	if !rec.Accepted() || rec.MatchLength() != 1 {
		t.Errorf("expected recognizer to accept 1 rune, have %s", rec)
	}
	rec.Release()
	if rec.MatchLen != 0 || rec.accepted {
		t.Errorf("expected released recognizer to be cleared")
	}
}

func TestRuleSetPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch")
	defer teardown()
	//
	rs := NewRuleSet(Rule{Kind: Acronym, Start: rule_AB}, Rule{Kind: Num, Start: rule_A})
	for _, c := range []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"aab", Acronym, true},
		{"aaa", Num, true},
		{"ba", AlphaNum, false},
		{"abb", AlphaNum, false},
		{"", AlphaNum, false},
	} {
		runes, classes := classesOf(c.in)
		kind, ok := rs.Match(runes, classes, clsEOT)
		if ok != c.ok || kind != c.kind {
			t.Errorf("%q: expected %v/%v, have %v/%v", c.in, c.kind, c.ok, kind, ok)
		}
	}
}
