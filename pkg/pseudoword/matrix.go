package pseudoword

import "sort"

// Context is a lookup key into a Matrix: up to order preceding symbols, or
// BoundaryContext for the start of a word.
type Context string

// BoundaryContext is the context every word starts from.
const BoundaryContext = Context(string(Boundary))

// contextOf builds the context made of the trailing up-to-order runes of out.
func contextOf(out []rune, order int) Context {
	if len(out) == 0 || order < 1 {
		return BoundaryContext
	}
	start := max(0, len(out)-order)
	return Context(string(out[start:]))
}

// Outcome is one possible continuation of a context and the number of times
// it was observed during training.
type Outcome struct {
	Symbol rune // A charset symbol, or Boundary for end of word
	Count  int
}

// Transition is the frequency distribution over next symbols for a single
// context. Slot i of counts holds charset symbol i; the final slot holds
// Boundary.
type Transition struct {
	counts []int
	total  int
	// ranked and cumulative are filled once training is done. ranked lists
	// the slots with a non-zero count by ascending count, ties broken by slot.
	ranked     []int
	cumulative []int
}

func newTransition(charset Charset) *Transition {
	return &Transition{counts: make([]int, charset.Len()+1)}
}

func (t *Transition) observe(slot int) {
	t.counts[slot]++
	t.total++
}

// freeze computes the sampling layout. It must run after the last observe.
func (t *Transition) freeze() {
	t.ranked = t.ranked[:0]
	for slot, c := range t.counts {
		if c > 0 {
			t.ranked = append(t.ranked, slot)
		}
	}
	sort.SliceStable(t.ranked, func(i, j int) bool {
		return t.counts[t.ranked[i]] < t.counts[t.ranked[j]]
	})
	t.cumulative = make([]int, len(t.ranked))
	acc := 0
	for i, slot := range t.ranked {
		acc += t.counts[slot]
		t.cumulative[i] = acc
	}
}

// Total returns the number of observations recorded for this context. It
// always equals the sum of all outcome counts.
func (t *Transition) Total() int {
	return t.total
}

// Matrix maps every context observed during training to its Transition. It
// is built by BuildMatrix and never modified afterwards.
type Matrix struct {
	order       int
	charset     Charset
	transitions map[Context]*Transition
}

// Order returns the maximum context length the matrix was trained with.
func (m *Matrix) Order() int {
	if m == nil {
		return 0
	}
	return m.order
}

// Charset returns the charset the matrix was trained with.
func (m *Matrix) Charset() Charset {
	if m == nil {
		return Charset{}
	}
	return m.charset
}

// Len returns the number of distinct contexts in the matrix.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.transitions)
}

// Contexts returns every context in the matrix, sorted.
func (m *Matrix) Contexts() []Context {
	if m == nil {
		return nil
	}
	out := make([]Context, 0, len(m.transitions))
	for ctx := range m.transitions {
		out = append(out, ctx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns how many times next followed ctx during training. Unknown
// contexts and symbols count as zero.
func (m *Matrix) Count(ctx Context, next rune) int {
	if m == nil {
		return 0
	}
	t, ok := m.transitions[ctx]
	if !ok {
		return 0
	}
	slot := m.charset.indexOf(next)
	if slot < 0 {
		return 0
	}
	return t.counts[slot]
}

// Total returns the number of observations recorded for ctx, or zero if the
// context was never seen.
func (m *Matrix) Total(ctx Context) int {
	if m == nil {
		return 0
	}
	if t, ok := m.transitions[ctx]; ok {
		return t.total
	}
	return 0
}

// Outcomes returns the non-zero outcomes of ctx in charset order, with
// Boundary last. The second result is false if ctx was never seen.
func (m *Matrix) Outcomes(ctx Context) ([]Outcome, bool) {
	if m == nil {
		return nil, false
	}
	t, ok := m.transitions[ctx]
	if !ok {
		return nil, false
	}
	var out []Outcome
	for slot, c := range t.counts {
		if c > 0 {
			out = append(out, Outcome{Symbol: m.charset.symbolAt(slot), Count: c})
		}
	}
	return out, true
}
