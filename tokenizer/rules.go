package tokenizer

import (
	"github.com/npillmayer/mbsearch"
)

// Rules for the stricter token kinds. They are run in parallel over a span
// of non-blank text which contains both alphanumeric characters and
// punctuation. A rule accepts only when it sees the end-of-span sentinel,
// i.e. it has to cover the complete span.
//
// Rules keep flags in the recognizer's Expect field (we “mis-use” it).

func newRuleSet() *mbsearch.RuleSet {
	return mbsearch.NewRuleSet(
		mbsearch.Rule{Kind: mbsearch.Acronym, Start: rule_Acronym},
		mbsearch.Rule{Kind: mbsearch.Apostrophe, Start: rule_Apostrophe},
		mbsearch.Rule{Kind: mbsearch.Host, Start: rule_Host},
		mbsearch.Rule{Kind: mbsearch.Num, Start: rule_Num},
	)
}

// --- Acronym --------------------------------------------------------------

// L(.L)+.?  with Expect counting letters
func rule_Acronym(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	if CharClass(cpClass) != LetterClass {
		return mbsearch.DoAbort(rec)
	}
	rec.MatchLen++
	rec.Expect = 1
	return cont_AcronymDot
}

func cont_AcronymDot(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	if CharClass(cpClass) != DotClass {
		return mbsearch.DoAbort(rec)
	}
	rec.MatchLen++
	return cont_AcronymLetter
}

func cont_AcronymLetter(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	switch CharClass(cpClass) {
	case LetterClass:
		rec.MatchLen++
		rec.Expect++
		return finish_Acronym
	case eot: // trailing dot
		if rec.Expect >= 2 {
			return mbsearch.DoAccept(rec)
		}
	}
	return mbsearch.DoAbort(rec)
}

func finish_Acronym(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	switch CharClass(cpClass) {
	case DotClass:
		rec.MatchLen++
		return cont_AcronymLetter
	case eot:
		return mbsearch.DoAccept(rec)
	}
	return mbsearch.DoAbort(rec)
}

// --- Apostrophe -----------------------------------------------------------

// L+'s
func rule_Apostrophe(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	if CharClass(cpClass) != LetterClass {
		return mbsearch.DoAbort(rec)
	}
	rec.MatchLen++
	return cont_Apostrophe
}

func cont_Apostrophe(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	switch CharClass(cpClass) {
	case LetterClass:
		rec.MatchLen++
		return cont_Apostrophe
	case ApostropheClass:
		rec.MatchLen++
		return cont_ApostropheS
	}
	return mbsearch.DoAbort(rec)
}

func cont_ApostropheS(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	if r == 's' || r == 'S' {
		rec.MatchLen++
		return finish_Apostrophe
	}
	return mbsearch.DoAbort(rec)
}

func finish_Apostrophe(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	if CharClass(cpClass) == eot {
		return mbsearch.DoAccept(rec)
	}
	return mbsearch.DoAbort(rec)
}

// --- Host -----------------------------------------------------------------

const (
	hostAt          = 1 << iota // seen '@'
	hostDot                     // seen '.' after '@', if any
	hostLetterStart             // current label starts with a letter
)

// [label@]label(.label)+  with the last label starting with a letter
func rule_Host(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	return startHostLabel(rec, CharClass(cpClass))
}

func startHostLabel(rec *mbsearch.Recognizer, c CharClass) mbsearch.NfaStateFn {
	switch c {
	case LetterClass:
		rec.Expect |= hostLetterStart
	case DigitClass:
		rec.Expect &^= hostLetterStart
	default:
		return mbsearch.DoAbort(rec)
	}
	rec.MatchLen++
	return cont_Host
}

func cont_Host(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	switch c := CharClass(cpClass); c {
	case LetterClass, DigitClass:
		rec.MatchLen++
		return cont_Host
	case DotClass:
		rec.MatchLen++
		rec.Expect |= hostDot
		return cont_HostLabel
	case AtClass:
		if rec.Expect&hostAt != 0 {
			break
		}
		rec.MatchLen++
		rec.Expect = (rec.Expect | hostAt) &^ hostDot
		return cont_HostLabel
	case eot:
		if rec.Expect&hostDot != 0 && rec.Expect&hostLetterStart != 0 {
			return mbsearch.DoAccept(rec)
		}
	}
	return mbsearch.DoAbort(rec)
}

func cont_HostLabel(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	return startHostLabel(rec, CharClass(cpClass))
}

// --- Num ------------------------------------------------------------------

const (
	numDigit    = 1 << iota // seen a digit
	numLetter               // seen a letter
	numJoiner               // seen any joiner
	numNonHyphen            // seen a joiner other than '-'
)

// groups of alphanumerics, joined by - . / or ,
func rule_Num(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	return numGroup(rec, CharClass(cpClass))
}

func numGroup(rec *mbsearch.Recognizer, c CharClass) mbsearch.NfaStateFn {
	switch c {
	case LetterClass:
		rec.Expect |= numLetter
	case DigitClass:
		rec.Expect |= numDigit
	default:
		return mbsearch.DoAbort(rec)
	}
	rec.MatchLen++
	return cont_Num
}

func cont_Num(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	switch c := CharClass(cpClass); c {
	case LetterClass, DigitClass:
		return numGroup(rec, c)
	case HyphenClass:
		rec.MatchLen++
		rec.Expect |= numJoiner
		return cont_NumGroup
	case DotClass, SlashClass, CommaClass:
		rec.MatchLen++
		rec.Expect |= numJoiner | numNonHyphen
		return cont_NumGroup
	case eot:
		x := rec.Expect
		if x&numJoiner != 0 && x&numDigit != 0 && x&(numLetter|numNonHyphen) != 0 {
			return mbsearch.DoAccept(rec)
		}
	}
	return mbsearch.DoAbort(rec)
}

func cont_NumGroup(rec *mbsearch.Recognizer, r rune, cpClass int) mbsearch.NfaStateFn {
	return numGroup(rec, CharClass(cpClass))
}
