package analyzer_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/internal/casefile"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func ExampleAnalyzer() {
	a := analyzer.New(analyzer.EntityName)
	for _, tok := range a.Analyze("Simon & Garfunkel") {
		fmt.Printf("%s %s %d-%d\n", tok.Term, tok.Kind, tok.Start, tok.End)
	}
	// Output: simon <ALPHANUM> 0-5
	// and <ALPHANUM> 6-7
	// garfunkel <ALPHANUM> 8-17
}

func TestCaseFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.analyzer")
	defer teardown()
	//
	cf, err := casefile.Open("testdata/analysis.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer cf.Close()
	analyzers := make(map[string]*analyzer.Analyzer)
	n := 0
	for cf.Scan() {
		name, input, expected := cf.Field(1), cf.Field(2), casefile.List(cf.Field(3))
		a, ok := analyzers[name]
		if !ok {
			p, found := analyzer.ProfileByName(name)
			if !found {
				t.Fatalf("%s: unknown profile %q", cf.Pos(), name)
			}
			a = analyzer.New(p)
			analyzers[name] = a
		}
		tokens := a.Analyze(input)
		terms := make([]string, len(tokens))
		for i := range tokens {
			terms[i] = string(tokens[i].Term)
		}
		if !reflect.DeepEqual(terms, expected) {
			t.Errorf("%s: %s(%q): expected %q, have %q", cf.Pos(), name, input, expected, terms)
		}
		if kinds := casefile.List(cf.Field(4)); len(kinds) > 0 && len(kinds) == len(tokens) {
			for i, k := range kinds {
				kind, ok := mbsearch.KindFromString(k)
				if !ok {
					t.Fatalf("%s: unknown token kind %q", cf.Pos(), k)
				}
				if tokens[i].Kind != kind {
					t.Errorf("%s: %s(%q): expected %s for %q, have %s", cf.Pos(), name, input, kind, terms[i], tokens[i].Kind)
				}
			}
		} else if len(kinds) > 0 {
			t.Errorf("%s: expected %d kinds, have %d tokens", cf.Pos(), len(kinds), len(tokens))
		}
		n++
	}
	if err := cf.Err(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%d cases checked", n)
}

func TestEquivalentInputs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.analyzer")
	defer teardown()
	//
	for _, p := range []*analyzer.Profile{analyzer.EntityName, analyzer.Title} {
		a := analyzer.New(p)
		for _, group := range [][]string{
			{"ゲーム", "ゲエム", "げえむ", "ｹﾞｰﾑ"},
			{"パーティー", "ﾊﾟｰﾃｨｰ"},
			{"寧夏", "宁夏"},
			{"tést", "test", "TEST"},
			{"Platinum & Gold", "Platinum and Gold"},
			{"1999-2000", "1999–2000", "1999—2000"},
			{"R.E.S", "R.E.S.", "res"},
		} {
			expected := a.Terms(group[0])
			if len(expected) == 0 {
				t.Errorf("%s: no terms for %q", p.Name, group[0])
				continue
			}
			for _, input := range group[1:] {
				if terms := a.Terms(input); !reflect.DeepEqual(terms, expected) {
					t.Errorf("%s: expected %q to analyze like %q = %q, have %q",
						p.Name, input, group[0], expected, terms)
				}
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	a := analyzer.New(analyzer.EntityName)
	for _, input := range []string{"simon and garfunkel", "the beatles", "abba"} {
		first := a.Terms(input)
		joined := ""
		for i, term := range first {
			if i > 0 {
				joined += " "
			}
			joined += term
		}
		if joined != input {
			t.Errorf("expected %q to be unchanged, have %q", input, first)
		}
		if second := a.Terms(joined); !reflect.DeepEqual(first, second) {
			t.Errorf("expected analysis to be idempotent, have %q then %q", first, second)
		}
	}
}

func TestOffsets(t *testing.T) {
	for _, p := range []*analyzer.Profile{analyzer.EntityName, analyzer.Title, analyzer.KeywordExact} {
		a := analyzer.New(p)
		for _, input := range []string{
			"Simon & Garfunkel & Friends",
			"1999–2000 John’s Symphony No. 5",
			"T.M.Revolution×水樹奈々",
			"Ｓｉｍｏｎ",
			"Rock&Roll–Pop!",
			"  ",
		} {
			prev := 0
			for _, tok := range a.Analyze(input) {
				if tok.Start < 0 || tok.End > len(input) || tok.Start > tok.End {
					t.Errorf("%s(%q): offsets out of bounds: %s", p.Name, input, tok.String())
					continue
				}
				if !utf8.ValidString(input[tok.Start:tok.End]) {
					t.Errorf("%s(%q): offsets split a character: %s", p.Name, input, tok.String())
				}
				if tok.Start < prev {
					t.Errorf("%s(%q): offsets not monotonic at %s", p.Name, input, tok.String())
				}
				prev = tok.Start
			}
		}
	}
}

func TestSplitPartsOfSubstitutedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.analyzer")
	defer teardown()
	//
	a := analyzer.New(analyzer.EntityName)
	// "&" grows by two bytes, the en dash shrinks by two
	input := "Rock&Roll–Pop!"
	tokens := a.Analyze(input)
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, have %v", tokens)
	}
	for i, term := range []string{"rockandroll", "pop"} {
		tok := tokens[i]
		if string(tok.Term) != term {
			t.Errorf("token #%d: expected %q, have %q", i, term, tok.Term)
		}
		if tok.Start != 0 || tok.End != len(input) {
			t.Errorf("token #%d: expected span of whole word [0,%d], have %s", i, len(input), tok.String())
		}
	}
	// without substitutions, parts keep their own offsets
	tokens = a.Analyze("Rock-Roll")
	if len(tokens) != 2 || tokens[1].Start != 5 || tokens[1].End != 9 {
		t.Errorf("expected 'roll' at [5,9], have %v", tokens)
	}
}

func TestMixedScriptKinds(t *testing.T) {
	a := analyzer.New(analyzer.EntityName)
	var kinds []mbsearch.Kind
	for _, tok := range a.Analyze("T.M.Revolution×水樹奈々") {
		kinds = append(kinds, tok.Kind)
	}
	// "T.M.Revolution×" is split into three words, "々" folds to nothing
	expected := []mbsearch.Kind{mbsearch.AlphaNumAndPunctuation, mbsearch.AlphaNumAndPunctuation,
		mbsearch.AlphaNumAndPunctuation, mbsearch.CJ, mbsearch.CJ, mbsearch.CJ}
	if !reflect.DeepEqual(kinds, expected) {
		t.Errorf("expected kinds %v, have %v", expected, kinds)
	}
}

func TestEmptyTermsCarryPosition(t *testing.T) {
	a := analyzer.New(analyzer.EntityName)
	tokens := a.Analyze("a ー b")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, have %v", tokens)
	}
	if tokens[0].PosInc != 1 || tokens[1].PosInc != 2 {
		t.Errorf("expected position increments 1 and 2, have %d and %d",
			tokens[0].PosInc, tokens[1].PosInc)
	}
	if tokens := a.Analyze(""); len(tokens) != 0 {
		t.Errorf("expected no tokens for empty input, have %v", tokens)
	}
}

func TestReset(t *testing.T) {
	a := analyzer.New(analyzer.Title)
	a.Reset("水樹奈々 first")
	var tok mbsearch.Token
	a.Next(&tok) // leave the bigram filter with buffered tokens
	if terms := a.Terms("second"); !reflect.DeepEqual(terms, []string{"second"}) {
		t.Errorf("expected state of previous input to be discarded, have %q", terms)
	}
	if a.Err() != nil {
		t.Errorf("unexpected error %v", a.Err())
	}
}

func TestMaxTokenLength(t *testing.T) {
	a := analyzer.New(analyzer.EntityName, analyzer.MaxTokenLength(4))
	tokens := a.Analyze("abc abcdefgh xyz")
	if len(tokens) != 2 || tokens[1].PosInc != 2 {
		t.Errorf("expected over-long token to be dropped, have %v", tokens)
	}
}

func TestAnalyzeValues(t *testing.T) {
	a := analyzer.New(analyzer.ArtistName)
	tokens := a.AnalyzeValues([]string{"Simon", "", "Art Garfunkel"}, analyzer.DefaultPositionGap)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %v", tokens)
	}
	if tokens[1].PosInc != 1+2*analyzer.DefaultPositionGap {
		t.Errorf("expected position gap of 2 values, have %d", tokens[1].PosInc)
	}
	if tokens[2].PosInc != 1 {
		t.Errorf("expected position increment 1 within value, have %d", tokens[2].PosInc)
	}
	// "Simon" + sep + "" + sep = 7
	if tokens[1].Start != 7 || tokens[2].End != 20 {
		t.Errorf("expected shifted offsets, have %s and %s", tokens[1].String(), tokens[2].String())
	}
}

func TestRegistry(t *testing.T) {
	r := analyzer.StandardRegistry()
	for field, name := range map[string]string{
		"artist":  analyzer.ArtistNameProfile,
		"release": analyzer.TitleProfile,
		"country": analyzer.KeywordExactProfile,
		"tnum":    analyzer.LeadingZeroesProfile,
		"comment": analyzer.EntityNameProfile,
	} {
		if p := r.Lookup(field); p.Name != name {
			t.Errorf("field %s: expected profile %s, have %s", field, name, p.Name)
		}
	}
	fields := r.Fields()
	for i := 1; i < len(fields); i++ {
		if fields[i-1] >= fields[i] {
			t.Errorf("expected sorted field names, have %v", fields)
			break
		}
	}
	if _, err := analyzer.NewRegistryFromMap(map[string]string{"x": "no-such-profile"}, ""); err == nil {
		t.Errorf("expected error for unknown profile")
	}
	r, err := analyzer.NewRegistryFromMap(map[string]string{"label": "title"}, "keyword-exact")
	if err != nil {
		t.Fatal(err)
	}
	if r.Lookup("label") != analyzer.Title || r.Lookup("other") != analyzer.KeywordExact {
		t.Errorf("unexpected registry lookups")
	}
	if len(r.Profiles()) != 2 {
		t.Errorf("expected 2 profiles in use, have %d", len(r.Profiles()))
	}
}

func TestProfileNames(t *testing.T) {
	names := analyzer.ProfileNames()
	if len(names) != 8 {
		t.Errorf("expected 8 standard profiles, have %v", names)
	}
	for _, name := range names {
		if p, ok := analyzer.ProfileByName(name); !ok || p.Name != name {
			t.Errorf("profile %s not found by name", name)
		}
	}
}

func TestPool(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.analyzer")
	defer teardown()
	//
	ctx := context.Background()
	pool := analyzer.NewPool(ctx, analyzer.Title, 2)
	inputs := []string{"寧夏", "Symphony No. 5", "There's", "R.E.S.", "Björk", "1999–2000"}
	expected := make([][]string, len(inputs))
	a := analyzer.New(analyzer.Title)
	for i, input := range inputs {
		expected[i] = a.Terms(input)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 8*len(inputs))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range inputs {
				a, err := pool.Borrow(ctx)
				if err != nil {
					errs <- err
					return
				}
				if terms := a.Terms(input); !reflect.DeepEqual(terms, expected[i]) {
					errs <- fmt.Errorf("%q: expected %q, have %q", input, expected[i], terms)
				}
				if err := pool.Return(ctx, a); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	pool.Close(ctx)
	if _, err := pool.Borrow(ctx); err == nil {
		t.Errorf("expected error when borrowing from closed pool")
	}
}
