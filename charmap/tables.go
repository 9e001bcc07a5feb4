package charmap

// Standard substitution tables. All of them are process-lifetime values and
// must not be modified.
var (
	// Ampersand lets "&" and "and" match each other.
	Ampersand = NewTable(P("&", "and"))

	// CharEquivalents unifies dash and quote variants and folds phonetic
	// extension and modifier letters to their base letters.
	CharEquivalents = NewTable(charEquivalents()...)

	// Hebrew maps Hebrew punctuation to its ASCII look-alikes.
	Hebrew = NewTable(
		P("׳", "'"),  // geresh
		P("־", "-"),  // maqaf
		P("״", "\""), // gershayim
	)

	// TitleNumbers joins "No." and a following digit, so that "No. 1" and
	// "No.1" produce the same token.
	TitleNumbers = NewTable(titleNumbers()...)

	// Spaces removes blanks.
	Spaces = NewTable(P(" ", ""))

	// Separators removes common separator characters.
	Separators = NewTable(P("-", ""), P("_", ""), P(":", ""))
)

func charEquivalents() []Pair {
	pairs := []Pair{
		P("’", "'"), // right single quotation mark
		P("‐", "-"), // hyphen
		P("‒", "-"), // figure dash
		P("–", "-"), // en dash
		P("—", "-"), // em dash
		P("−", "-"), // minus sign
		P("_", "-"),
	}
	for _, s := range [][2]string{
		{"ᴀ", "A"}, {"ᴁ", "ae"}, {"ᴂ", "ae"}, {"ᴃ", "B"}, {"ᴄ", "C"}, {"ᴅ", "D"},
		{"ᴆ", "E"}, {"ᴇ", "E"}, {"ᴊ", "j"}, {"ᴌ", "L"}, {"ᴍ", "M"}, {"ᴏ", "O"},
		{"ᴒ", "O"}, {"ᴓ", "o"}, {"ᴛ", "T"}, {"ᴜ", "U"}, {"ᴠ", "V"}, {"ᴡ", "W"},
		{"ᴢ", "Z"},
		{"ᴬ", "A"}, {"ᴭ", "AE"}, {"ᴮ", "B"}, {"ᴰ", "D"}, {"ᴱ", "E"}, {"ᴳ", "G"},
		{"ᴴ", "H"}, {"ᴵ", "I"}, {"ᴶ", "J"}, {"ᴷ", "K"}, {"ᴸ", "L"}, {"ᴹ", "M"},
		{"ᴺ", "N"}, {"ᴼ", "O"}, {"ᴾ", "P"}, {"ᴿ", "R"}, {"ᵀ", "T"}, {"ᵁ", "U"},
		{"ᵂ", "W"},
		{"ᵃ", "a"}, {"ᵇ", "b"}, {"ᵈ", "d"}, {"ᵉ", "e"}, {"ᵍ", "g"}, {"ᵏ", "k"},
		{"ᵐ", "m"}, {"ᵒ", "o"}, {"ᵖ", "p"}, {"ᵗ", "t"}, {"ᵘ", "u"}, {"ᵛ", "v"},
		{"ᵢ", "i"}, {"ᵣ", "r"}, {"ᵤ", "u"}, {"ᵥ", "v"},
		{"ᵦ", "β"}, {"ᵧ", "γ"}, {"ᵨ", "ϱ"}, {"ᵩ", "ϕ"}, {"ᵪ", "χ"},
		{"ᵟ", "δ"}, {"ᵡ", "χ"},
		{"ᵬ", "b"}, {"ᵭ", "d"}, {"ᵮ", "f"}, {"ᵯ", "m"}, {"ᵰ", "n"}, {"ᵱ", "p"},
		{"ᵲ", "r"}, {"ᵳ", "r"}, {"ᵴ", "s"}, {"ᵵ", "t"}, {"ᵶ", "z"}, {"ᵻ", "I"},
		{"ᵽ", "p"}, {"ᵾ", "u"},
		{"ı", "i"}, // dotless i
	} {
		pairs = append(pairs, P(s[0], s[1]))
	}
	return pairs
}

func titleNumbers() []Pair {
	var pairs []Pair
	for _, no := range []string{"No", "no", "NO", "nO"} {
		for d := '0'; d <= '9'; d++ {
			pairs = append(pairs, P(no+". "+string(d), no+"."+string(d)))
		}
	}
	return pairs
}
