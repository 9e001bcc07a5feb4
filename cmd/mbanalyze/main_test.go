package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/similarity"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newRunner(t *testing.T, p *analyzer.Profile, explain bool) (*runner, func()) {
	ctx := context.Background()
	pool := analyzer.NewPool(ctx, p, 2)
	r := &runner{
		pool:    pool,
		field:   "alias",
		scorer:  similarity.New(similarity.WithRule(similarity.AliasRule)),
		explain: explain,
	}
	return r, func() { pool.Close(ctx) }
}

func TestRunKeepsInputOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.cmd")
	defer teardown()
	//
	r, done := newRunner(t, analyzer.EntityName, false)
	defer done()
	var values []string
	for i := 0; i < 50; i++ {
		values = append(values, fmt.Sprintf("value%d", i))
	}
	var sb strings.Builder
	if err := r.run(context.Background(), fromArgs(values), 8, &sb); err != nil {
		t.Fatal(err)
	}
	blocks := strings.Split(strings.TrimSuffix(sb.String(), "\n\n"), "\n\n")
	if len(blocks) != len(values) {
		t.Fatalf("expected %d outputs, have %d", len(values), len(blocks))
	}
	for i, block := range blocks {
		expected := fmt.Sprintf("value%d <ALPHANUM> 0-%d +1", i, len(values[i]))
		if block != expected {
			t.Errorf("output %d: expected %q, have %q", i, expected, block)
		}
	}
}

func TestRunFromReader(t *testing.T) {
	r, done := newRunner(t, analyzer.KeywordExact, false)
	defer done()
	var sb strings.Builder
	input := fromReader(strings.NewReader("Simon & Garfunkel\nGB\n"))
	if err := r.run(context.Background(), input, 2, &sb); err != nil {
		t.Fatal(err)
	}
	expected := "simon & garfunkel <ALPHANUM> 0-17 +1\n\ngb <ALPHANUM> 0-2 +1\n\n"
	if sb.String() != expected {
		t.Errorf("expected %q, have %q", expected, sb.String())
	}
}

func TestRunValues(t *testing.T) {
	r, done := newRunner(t, analyzer.EntityName, false)
	defer done()
	r.values, r.gap = true, analyzer.DefaultPositionGap
	out, err := r.analyze(context.Background(), "Simon||Garfunkel")
	if err != nil {
		t.Fatal(err)
	}
	// the empty value adds its gap as well
	expected := "simon <ALPHANUM> 0-5 +1\ngarfunkel <ALPHANUM> 7-16 +201\n\n"
	if out != expected {
		t.Errorf("expected %q, have %q", expected, out)
	}
}

func TestExplain(t *testing.T) {
	r, done := newRunner(t, analyzer.ArtistName, true)
	defer done()
	out, err := r.analyze(context.Background(), "The Beatles Band Fans")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "lengthNorm(field=alias, terms=4)") || !strings.Contains(out, "frozen at 3 terms") {
		t.Errorf("expected explanation of frozen norm, have\n%s", out)
	}
}
