package filter

import (
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/npillmayer/mbsearch"
)

// BigramFilter forms bigrams from runs of adjacent CJ tokens. Two CJ tokens
// are adjacent if the second one immediately follows the first one, both in
// position and in the text.
//
// For a run of n > 1 characters the filter emits the unigram of the first
// character, the n-1 overlapping bigrams, and the unigram of the last
// character:
//
//   水 樹 奈  →  水  水樹  樹奈  奈
//
// A single CJ token is emitted as a unigram. Other tokens pass untouched.
type BigramFilter struct {
	base
	run        []mbsearch.Token // current run of unigrams
	slab       []mbsearch.Token // output tokens of a flushed run
	out        *arrayqueue.Queue
	pending    mbsearch.Token // token read ahead, terminating a run
	hasPending bool
}

// NewBigramFilter creates a CJK bigram filter.
func NewBigramFilter() *BigramFilter {
	return &BigramFilter{out: arrayqueue.New()}
}

// Reset is part of interface mbsearch.Filter.
func (f *BigramFilter) Reset() {
	f.run = f.run[:0]
	f.slab = f.slab[:0]
	f.out.Clear()
	f.hasPending = false
}

// Next is part of interface mbsearch.TokenSource.
func (f *BigramFilter) Next(tok *mbsearch.Token) bool {
	for {
		if i, ok := f.out.Dequeue(); ok {
			tok.CopyFrom(&f.slab[i.(int)])
			return true
		}
		if f.hasPending {
			tok.CopyFrom(&f.pending)
			f.hasPending = false
		} else if !f.next(tok) {
			if len(f.run) == 0 {
				return false
			}
			f.flush()
			continue
		}
		if tok.Kind != mbsearch.CJ || (len(f.run) > 0 && !adjacent(&f.run[len(f.run)-1], tok)) {
			if len(f.run) == 0 {
				return true
			}
			f.pending.CopyFrom(tok)
			f.hasPending = true
			f.flush()
			continue
		}
		var t *mbsearch.Token
		f.run, t = extend(f.run)
		t.CopyFrom(tok)
	}
}

func adjacent(prev, next *mbsearch.Token) bool {
	return next.PosInc == 1 && next.Start == prev.End
}

// flush converts the current run into output tokens.
func (f *BigramFilter) flush() {
	f.slab = f.slab[:0]
	run := f.run
	var t *mbsearch.Token
	f.slab, t = extend(f.slab)
	t.CopyFrom(&run[0])
	if len(run) > 1 {
		for i := 0; i+1 < len(run); i++ {
			f.slab, t = extend(f.slab)
			t.Term = append(append(t.Term[:0], run[i].Term...), run[i+1].Term...)
			t.Kind = mbsearch.CJ
			t.Start, t.End = run[i].Start, run[i+1].End
			t.PosInc = 1
			if i == 0 {
				t.PosInc = 0
			}
		}
		f.slab, t = extend(f.slab)
		t.CopyFrom(&run[len(run)-1])
		t.PosInc = 1
	}
	for i := range f.slab {
		f.out.Enqueue(i)
	}
	tracer().Debugf("bigram filter: run of %d unigrams -> %d tokens", len(run), len(f.slab))
	f.run = f.run[:0]
}

// extend appends a token to ts, re-using a previously allocated token if
// possible.
func extend(ts []mbsearch.Token) ([]mbsearch.Token, *mbsearch.Token) {
	if len(ts) < cap(ts) {
		ts = ts[:len(ts)+1]
	} else {
		ts = append(ts, mbsearch.Token{})
	}
	return ts, &ts[len(ts)-1]
}
