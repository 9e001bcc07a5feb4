package mbsearch

import (
	"context"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
)

// NfaStateFn represents a state in a non-deterministic finite automata.
// Functions of type NfaStateFn try to match a rune (Unicode code-point).
// The third argument is the character class of the rune, as assigned by
// the client (for the tokenizer, classes are letters, digits, dots, etc.).
//
// The first argument is the Recognizer (see type Recognizer in this
// package) which carries this state function.
//
// NfaStateFn – after matching a rune – must return another NfaStateFn,
// which will then in turn be called to process the next rune. The process
// of matching a span stops as soon as a NfaStateFn returns nil.
type NfaStateFn func(*Recognizer, rune, int) NfaStateFn

// A Recognizer represents an automata to recognize sequences of runes.
// Its main functionality is performed by an embedded NfaStateFn. The first
// NfaStateFn to use is provided with the constructor.
//
// Recognizer's state functions must be careful to increment MatchLen
// with each matched rune.
//
// Semantics of Expect and UserData are up to the client and not used by
// the default mechanism. Rules frequently use Expect as a small bit-set of
// things seen so far.
type Recognizer struct {
	Expect   int         // semantics are up to the client
	MatchLen int         // length of active match
	UserData interface{} // clients may need to store additional information
	accepted bool        // set by DoAccept
	nextStep NfaStateFn  // next step of the NFA
}

// NewRecognizer creates a new Recognizer.
// This is rarely used, as clients rather should call NewPooledRecognizer().
func NewRecognizer(class int, next NfaStateFn) *Recognizer {
	rec := &Recognizer{}
	rec.Expect = class
	rec.nextStep = next
	return rec
}

// Recognizers are short-lived objects. To avoid multiple allocation of
// small objects we will pool them.
type recognizerPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalRecognizerPool *recognizerPool

func init() {
	globalRecognizerPool = &recognizerPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &Recognizer{}, nil
		})
	globalRecognizerPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalRecognizerPool.opool = pool.NewObjectPool(globalRecognizerPool.ctx, factory, config)
}

// NewPooledRecognizer returns a new Recognizer, pre-filled with an expectation
// and a state function. The Recognizer is pooled for efficiency; clients
// call Release() when done with it.
func NewPooledRecognizer(expect int, stateFn NfaStateFn) *Recognizer {
	o, err := globalRecognizerPool.opool.BorrowObject(globalRecognizerPool.ctx)
	if err != nil { // not expected for an unbounded pool
		tracer().Errorf("recognizer pool: %v", err)
		return NewRecognizer(expect, stateFn)
	}
	rec := o.(*Recognizer)
	rec.Expect = expect
	rec.nextStep = stateFn
	return rec
}

// Release clears the Recognizer and puts it back into the pool.
func (rec *Recognizer) Release() {
	rec.Expect = 0
	rec.MatchLen = 0
	rec.UserData = nil
	rec.accepted = false
	rec.nextStep = nil
	_ = globalRecognizerPool.opool.ReturnObject(globalRecognizerPool.ctx, rec)
}

// Simple stringer for debugging purposes.
func (rec *Recognizer) String() string {
	if rec == nil {
		return "[nil rule]"
	}
	return fmt.Sprintf("[%d -> done=%v, accept=%v]", rec.Expect, rec.Done(), rec.accepted)
}

// Done signals that a Recognizer has finished matching runes. If Accepted()
// is true it has accepted the sequence of runes, otherwise it has aborted.
func (rec *Recognizer) Done() bool {
	return rec.nextStep == nil
}

// Accepted is true if the recognizer is done and has accepted its input.
func (rec *Recognizer) Accepted() bool {
	return rec.Done() && rec.accepted
}

// MatchLength returns the number of runes matched so far.
func (rec *Recognizer) MatchLength() int {
	return rec.MatchLen
}

// RuneEvent lets the recognizer process the next rune of class cls.
func (rec *Recognizer) RuneEvent(r rune, cls int) {
	if rec.nextStep != nil {
		rec.nextStep = rec.nextStep(rec, r, cls)
	}
}

// --- Standard Recognizer Rules ----------------------------------------

// DoAbort returns a state function which signals abort.
func DoAbort(rec *Recognizer) NfaStateFn {
	rec.MatchLen = 0
	rec.accepted = false
	return nil
}

// DoAccept returns a state function which signals accept.
func DoAccept(rec *Recognizer) NfaStateFn {
	rec.accepted = true
	tracer().Debugf("ACCEPT after %d runes", rec.MatchLen)
	return nil
}

// --- Rule Sets --------------------------------------------------------

// Rule is a named start state of an automata. Rules within a RuleSet are
// ordered by precedence.
type Rule struct {
	Kind  Kind
	Start NfaStateFn
}

// RuleSet runs a number of rules in parallel over a span of runes, the way a
// publisher notifies its subscribers of every rune read.
type RuleSet struct {
	rules  []Rule
	active []*Recognizer
}

// NewRuleSet creates a rule set from rules in order of precedence.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{
		rules:  rules,
		active: make([]*Recognizer, len(rules)),
	}
}

// Match feeds runes together with their classes to every rule, followed by
// a single event of class eot. It returns the kind of the first rule (in
// order of precedence) having accepted the complete span. If no rule accepts,
// Match returns false.
//
// A RuleSet is not safe for concurrent use.
func (rs *RuleSet) Match(runes []rune, classes []int, eot int) (Kind, bool) {
	if len(runes) == 0 {
		return AlphaNum, false
	}
	running := 0
	for i, rule := range rs.rules {
		rec := NewPooledRecognizer(0, rule.Start)
		rs.active[i] = rec
		running++
	}
	defer rs.release()
	for i, r := range runes {
		if running == 0 {
			return AlphaNum, false
		}
		running = rs.publish(r, classes[i])
	}
	rs.publish(0, eot)
	for i, rec := range rs.active {
		if rec.Accepted() && rec.MatchLen == len(runes) {
			return rs.rules[i].Kind, true
		}
	}
	return AlphaNum, false
}

// publish notifies every running recognizer and returns the number of
// recognizers still running. A recognizer accepting before the end of the
// span is treated as having aborted.
func (rs *RuleSet) publish(r rune, cls int) int {
	running := 0
	for _, rec := range rs.active {
		if rec.Done() {
			continue
		}
		rec.RuneEvent(r, cls)
		if !rec.Done() {
			running++
		}
	}
	return running
}

func (rs *RuleSet) release() {
	for i, rec := range rs.active {
		if rec != nil {
			rec.Release()
			rs.active[i] = nil
		}
	}
}
