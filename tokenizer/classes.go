package tokenizer

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// CharClass is the class of a character, as far as token rules are concerned.
type CharClass int

// Character classes for tokenization.
const (
	LetterClass    CharClass = iota // letters and combining marks, except Han ideographs
	DigitClass                      // numbers of any script
	IdeographClass                  // Han ideographs
	ApostropheClass
	DotClass
	HyphenClass
	SlashClass
	CommaClass
	AtClass
	SpaceClass
	PunctClass // everything else, including U+FFFD for malformed input
	eot        // end of span sentinel
)

var classNames = [...]string{"Letter", "Digit", "Ideograph", "Apostrophe", "Dot",
	"Hyphen", "Slash", "Comma", "At", "Space", "Punct", "eot"}

func (c CharClass) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "?"
	}
	return classNames[c]
}

var (
	letterTable    *unicode.RangeTable
	ideographTable *unicode.RangeTable
)

var setupOnce sync.Once

// SetupClasses creates the range tables for character classes.
// (Concurrency-safe).
//
// The tokenizer will call this transparently if it has not been called beforehand.
func SetupClasses() {
	setupOnce.Do(func() {
		letterTable = rangetable.Merge(unicode.L, unicode.M)
		ideographTable = intersect(unicode.Han, unicode.Ideographic)
	})
}

// intersect creates a table of code-points contained in both tables.
func intersect(a, b *unicode.RangeTable) *unicode.RangeTable {
	var runes []rune
	rangetable.Visit(a, func(r rune) {
		if unicode.Is(b, r) {
			runes = append(runes, r)
		}
	})
	return rangetable.New(runes...)
}

// ClassForRune gets the character class for a Unicode code-point.
func ClassForRune(r rune) CharClass {
	switch r {
	case '\'':
		return ApostropheClass
	case '.':
		return DotClass
	case '-':
		return HyphenClass
	case '/':
		return SlashClass
	case ',':
		return CommaClass
	case '@':
		return AtClass
	}
	if r < 0x80 {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			return LetterClass
		case '0' <= r && r <= '9':
			return DigitClass
		}
	}
	if unicode.Is(unicode.White_Space, r) {
		return SpaceClass
	}
	if unicode.Is(ideographTable, r) {
		return IdeographClass
	}
	if unicode.Is(letterTable, r) {
		return LetterClass
	}
	if unicode.IsNumber(r) {
		return DigitClass
	}
	return PunctClass
}

func isAlnum(c CharClass) bool {
	return c == LetterClass || c == DigitClass
}
