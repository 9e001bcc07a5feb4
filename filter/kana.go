package filter

import "unicode/utf8"

const (
	prolongedSoundMark = 'ー'
	voicedSoundMark    = '\u3099' // combining katakana-hiragana voiced sound mark
	semiVoicedMark     = '\u309a'
	hiraganaN          = 'ん'
)

// vowels of Hiragana U+3041 … U+3096; '-' for ん
const hiraganaVowels = "aaiiuueeoo" + "aaiiuueeoo" + "aaiiuueeoo" + "aaiiuuueeoo" +
	"aiueo" + "aaaiiiuuueeeooo" + "aiueo" + "aauuoo" + "aiueo" + "aaieo" + "-uae"

var vowelKana = map[byte]rune{'a': 'あ', 'i': 'い', 'u': 'う', 'e': 'え', 'o': 'お'}

// Katakana without Hiragana counterpart, mapped to a Hiragana letter plus
// a combining voiced sound mark.
var voicedKatakana = map[rune]rune{
	'ヷ': 'わ',
	'ヸ': 'ゐ',
	'ヹ': 'ゑ',
	'ヺ': 'を',
}

func isHiragana(r rune) bool {
	return r >= 0x3041 && r <= 0x3096
}

// vowelOf returns the vowel kana of a Hiragana letter, or 0.
func vowelOf(r rune) rune {
	if !isHiragana(r) || r == hiraganaN {
		return 0
	}
	return vowelKana[hiraganaVowels[r-0x3041]]
}

// katakanaToHiragana appends the Hiragana transliteration of r to dst.
// prev is the last kana written to dst, if any, and is returned unchanged
// for combining sound marks. Runes other than Katakana are appended
// unchanged.
func katakanaToHiragana(dst []byte, r, prev rune) ([]byte, rune) {
	switch {
	case r == voicedSoundMark || r == semiVoicedMark:
		return utf8.AppendRune(dst, r), prev
	case r >= 0x30A1 && r <= 0x30F6:
		r -= 0x60
	case r == 'ヽ':
		r = 'ゝ'
	case r == 'ヾ':
		r = 'ゞ'
	case r == prolongedSoundMark:
		if v := vowelOf(prev); v != 0 {
			r = v
		}
	default:
		if h, ok := voicedKatakana[r]; ok {
			dst = utf8.AppendRune(dst, h)
			return utf8.AppendRune(dst, voicedSoundMark), h
		}
	}
	return utf8.AppendRune(dst, r), r
}
