package pseudoword

// BuildMatrix trains a transition matrix from corpus. Words shorter than two
// runes or containing a rune outside charset are skipped entirely.
//
// Every eligible word is scanned once per sub-order, from order down to 1.
// For each position from 0 to len(word) the context is Boundary at position 0
// and otherwise the up-to-o runes before the position; the observed next
// symbol is the rune at the position, or Boundary past the end of the word.
// The result holds contexts of every length, which is what the sampler backs
// off through.
func BuildMatrix(corpus []string, order int, charset Charset) *Matrix {
	m := &Matrix{
		order:       order,
		charset:     charset,
		transitions: make(map[Context]*Transition),
	}
	for _, word := range corpus {
		if !charset.accepts(word) {
			continue
		}
		m.trainWord([]rune(word))
	}
	for _, t := range m.transitions {
		t.freeze()
	}
	return m
}

func (m *Matrix) trainWord(word []rune) {
	for o := m.order; o > 0; o-- {
		for pointer := 0; pointer <= len(word); pointer++ {
			ctx := BoundaryContext
			if pointer > 0 {
				ctx = Context(string(word[max(0, pointer-o):pointer]))
			}

			next := Boundary
			if pointer < len(word) {
				next = word[pointer]
			}

			t, ok := m.transitions[ctx]
			if !ok {
				t = newTransition(m.charset)
				m.transitions[ctx] = t
			}
			t.observe(m.charset.indexOf(next))
		}
	}
}
