package charmap_test

import (
	"fmt"
	"testing"

	"github.com/npillmayer/mbsearch/charmap"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func ExampleMapper() {
	m := charmap.NewMapper(charmap.Merge(charmap.Ampersand, charmap.CharEquivalents))
	mapped := m.Map("Simon & Garfunkel")
	fmt.Println(mapped)
	fmt.Println(m.Correct(6), m.Correct(9))
	// Output: Simon and Garfunkel
	// 6 7
}

func TestLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.charmap")
	defer teardown()
	//
	table := charmap.NewTable(
		charmap.P("a", "1"),
		charmap.P("ab", "2"),
		charmap.P("abc", "3"),
		charmap.P("", "never"),
	)
	if table.Len() != 3 {
		t.Errorf("expected empty pattern to be ignored, table has %d entries", table.Len())
	}
	m := charmap.NewMapper(table)
	for _, c := range []struct{ in, out string }{
		{"abcab", "32"},
		{"aab", "12"},
		{"xabx", "x2x"},
		{"", ""},
		{"nothing", "nothing"},
	} {
		if out := m.Map(c.in); out != c.out {
			t.Errorf("%q: expected %q, have %q", c.in, c.out, out)
		}
	}
}

func TestDuplicatePatternsLastWins(t *testing.T) {
	table := charmap.Merge(
		charmap.NewTable(charmap.P("x", "1")),
		charmap.NewTable(charmap.P("x", "2")),
	)
	if out := charmap.NewMapper(table).Map("x"); out != "2" {
		t.Errorf("expected last replacement to win, have %q", out)
	}
}

func TestEquivalents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.charmap")
	defer teardown()
	//
	m := charmap.NewMapper(charmap.Merge(charmap.CharEquivalents, charmap.Hebrew))
	for _, c := range []struct{ in, out string }{
		{"1999–2000", "1999-2000"},
		{"John’s", "John's"},
		{"This_is", "This-is"},
		{"ᴬᴮᴰ", "ABD"},
		{"ıstanbul", "istanbul"},
		{"צ׳", "צ'"},
	} {
		if out := m.Map(c.in); out != c.out {
			t.Errorf("%q: expected %q, have %q", c.in, c.out, out)
		}
	}
}

func TestOffsetsGrowing(t *testing.T) {
	m := charmap.NewMapper(charmap.Ampersand)
	in := "a & b"
	out := m.Map(in)
	if out != "a and b" {
		t.Fatalf("expected 'a and b', have %q", out)
	}
	expected := []int{0, 1, 2, 2, 2, 3, 4, 5}
	for off, exp := range expected {
		if c := m.Correct(off); c != exp {
			t.Errorf("Correct(%d): expected %d, have %d", off, exp, c)
		}
	}
}

func TestOffsetsShrinking(t *testing.T) {
	m := charmap.NewMapper(charmap.CharEquivalents)
	in := "a–b" // en dash is 3 bytes
	out := m.Map(in)
	if out != "a-b" {
		t.Fatalf("expected 'a-b', have %q", out)
	}
	if m.Correct(2) != 4 || m.Correct(3) != 5 {
		t.Errorf("expected 'b' at [4,5], have [%d,%d]", m.Correct(2), m.Correct(3))
	}
	if m.Correct(1) != 1 {
		t.Errorf("expected dash to start at 1, have %d", m.Correct(1))
	}
}

func TestOffsetsMonotonicAndBounded(t *testing.T) {
	m := charmap.NewMapper(charmap.Merge(charmap.Ampersand, charmap.CharEquivalents, charmap.Spaces))
	for _, in := range []string{"a & b – c", "&&&", "– – –", "ᴭ&ᴭ", "  x  "} {
		out := m.Map(in)
		prev := 0
		for off := 0; off <= len(out); off++ {
			c := m.Correct(off)
			if c < prev || c < 0 || c > len(in) {
				t.Errorf("%q: Correct(%d)=%d not monotonic within [0,%d]", in, off, c, len(in))
			}
			prev = c
		}
		if m.Correct(len(out)) != len(in) {
			t.Errorf("%q: expected end of text to map to %d, have %d", in, len(in), m.Correct(len(out)))
		}
	}
}

func TestSubstituted(t *testing.T) {
	m := charmap.NewMapper(charmap.Merge(charmap.Ampersand, charmap.CharEquivalents))
	out := m.Map("Rock&Roll–Pop x")
	if out != "RockandRoll-Pop x" {
		t.Fatalf("expected 'RockandRoll-Pop x', have %q", out)
	}
	for _, c := range []struct {
		from, to int
		changed  bool
	}{
		{0, 4, false},  // "Rock"
		{0, 15, true},  // "RockandRoll-Pop"
		{4, 7, true},   // "and"
		{7, 11, false}, // "Roll"
		{11, 12, true}, // "-"
		{16, 17, false},
	} {
		if m.Substituted(c.from, c.to) != c.changed {
			t.Errorf("Substituted(%d,%d): expected %v", c.from, c.to, c.changed)
		}
	}
	m.Map("a - b")
	if m.Substituted(0, 5) {
		t.Errorf("expected substitutions of previous text to be cleared")
	}
}

func TestTitleNumbers(t *testing.T) {
	m := charmap.NewMapper(charmap.TitleNumbers)
	if out := m.Map("Symphony No. 5"); out != "Symphony No.5" {
		t.Errorf("expected 'Symphony No.5', have %q", out)
	}
	if out := m.Map("no. x"); out != "no. x" {
		t.Errorf("expected 'no. x' unchanged, have %q", out)
	}
}

func TestEmptyTable(t *testing.T) {
	m := charmap.NewMapper(nil)
	if out := m.Map("a & b"); out != "a & b" {
		t.Errorf("expected identity mapping, have %q", out)
	}
	if m.Correct(3) != 3 {
		t.Errorf("expected identity correction")
	}
}
