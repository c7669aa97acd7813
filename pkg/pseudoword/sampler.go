package pseudoword

import (
	"math/rand/v2"
	"sort"
)

// Source supplies uniform random integers. *rand.Rand from math/rand/v2
// satisfies it. Implementations need not be safe for concurrent use unless
// they are shared between goroutines.
type Source interface {
	// IntN returns a uniform random integer in [0, n). n is always positive.
	IntN(n int) int
}

// globalSource draws from the top-level math/rand/v2 functions, which are
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Next samples the symbol that follows ctx, or Boundary to end the word.
//
// When ctx was never observed the leftmost symbol is dropped and the lookup
// retried, down to the empty context, which falls back to BoundaryContext. A
// matrix with no BoundaryContext entry was trained on nothing and always
// yields Boundary.
func (m *Matrix) Next(ctx Context, rng Source) rune {
	t := m.lookup(ctx)
	if t == nil {
		return Boundary
	}
	if rng == nil {
		rng = globalSource{}
	}
	return m.charset.symbolAt(t.sample(rng))
}

// lookup finds the longest suffix of ctx that has a Transition.
func (m *Matrix) lookup(ctx Context) *Transition {
	if m == nil || len(m.transitions) == 0 {
		return nil
	}
	if ctx != BoundaryContext {
		runes := []rune(string(ctx))
		for len(runes) > 0 {
			if t, ok := m.transitions[Context(string(runes))]; ok {
				return t
			}
			runes = runes[1:]
		}
	}
	return m.transitions[BoundaryContext]
}

// sample draws a slot with probability counts[slot]/total. The draw is
// matched against cumulative counts laid out by ascending frequency; the
// layout does not change the resulting distribution.
func (t *Transition) sample(rng Source) int {
	if t.total <= 0 || len(t.ranked) == 0 {
		return len(t.counts) - 1
	}
	draw := rng.IntN(t.total)
	i := sort.SearchInts(t.cumulative, draw+1)
	if i >= len(t.ranked) {
		return len(t.counts) - 1
	}
	return t.ranked[i]
}
