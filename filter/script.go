package filter

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/longbridgeapp/opencc"
	"github.com/npillmayer/mbsearch"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// ScriptFilter maps characters of one script to equivalent characters of
// another: fullwidth and halfwidth forms to their normal width, Katakana to
// Hiragana, and Traditional Han to Simplified Han. All mappings are
// character-level and context-free, with the exception of the Katakana
// prolonged sound mark, which takes the vowel of the preceding kana
// ("ゲーム" → "げえむ").
type ScriptFilter struct {
	base
	fold   transform.Transformer
	folded []byte
	buf    []byte
}

// NewScriptFilter creates a script equivalence filter.
func NewScriptFilter() *ScriptFilter {
	return &ScriptFilter{fold: width.Fold}
}

// Next is part of interface mbsearch.TokenSource.
func (f *ScriptFilter) Next(tok *mbsearch.Token) bool {
	if !f.next(tok) {
		return false
	}
	if isASCII(tok.Term) {
		return true
	}
	f.folded = apply(f.fold, f.folded, tok.Term)
	f.buf = f.buf[:0]
	var prev rune
	for i := 0; i < len(f.folded); {
		r, size := utf8.DecodeRune(f.folded[i:])
		i += size
		if unicode.Is(unicode.Han, r) {
			r = simplified(r)
			f.buf = utf8.AppendRune(f.buf, r)
			prev = r
			continue
		}
		f.buf, prev = katakanaToHiragana(f.buf, r, prev)
	}
	tok.Term = append(tok.Term[:0], f.buf...)
	return true
}

// --- Traditional → Simplified Han ---------------------------------------

var (
	t2sOnce sync.Once
	t2s     *opencc.OpenCC
	t2sMemo sync.Map // rune → rune
)

func setupT2S() {
	var err error
	if t2s, err = opencc.New("t2s"); err != nil {
		tracer().Errorf("cannot load Traditional→Simplified dictionary: %v", err)
		t2s = nil
	}
}

// simplified returns the Simplified Han equivalent of a Traditional Han
// character. Characters without a single-character equivalent are returned
// unchanged.
func simplified(r rune) rune {
	if s, ok := t2sMemo.Load(r); ok {
		return s.(rune)
	}
	t2sOnce.Do(setupT2S)
	s := r
	if t2s != nil {
		out, err := t2s.Convert(string(r))
		if err == nil && utf8.RuneCountInString(out) == 1 {
			s, _ = utf8.DecodeRuneInString(out)
		}
	}
	t2sMemo.Store(r, s)
	return s
}
