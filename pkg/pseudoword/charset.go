package pseudoword

import "strings"

// Boundary is the sentinel that marks the start of a word when used as a
// context and the end of a word when returned as a next symbol. It is never
// a member of a Charset.
const Boundary rune = '$'

// Charset is an ordered, de-duplicated set of symbols a Model may train on
// and emit. The definition order is kept because it breaks ties when the
// sampler ranks outcomes.
type Charset struct {
	symbols []rune
	index   map[rune]int
}

// NewCharset builds a Charset from the runes of s, keeping the first
// occurrence of each rune. The Boundary rune is dropped.
func NewCharset(s string) Charset {
	cs := Charset{index: make(map[rune]int)}
	for _, r := range s {
		if r == Boundary {
			continue
		}
		if _, ok := cs.index[r]; ok {
			continue
		}
		cs.index[r] = len(cs.symbols)
		cs.symbols = append(cs.symbols, r)
	}
	return cs
}

// Len returns the number of symbols in the charset.
func (c Charset) Len() int {
	return len(c.symbols)
}

// Contains reports whether r is a member of the charset.
func (c Charset) Contains(r rune) bool {
	_, ok := c.index[r]
	return ok
}

// Symbols returns a copy of the charset's symbols in definition order.
func (c Charset) Symbols() []rune {
	out := make([]rune, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// String returns the charset's symbols joined in definition order.
func (c Charset) String() string {
	return string(c.symbols)
}

// indexOf maps a symbol to its outcome slot. Boundary occupies the slot
// after the last charset symbol; runes outside the charset return -1.
func (c Charset) indexOf(r rune) int {
	if r == Boundary {
		return len(c.symbols)
	}
	if i, ok := c.index[r]; ok {
		return i
	}
	return -1
}

// symbolAt is the inverse of indexOf.
func (c Charset) symbolAt(i int) rune {
	if i < 0 || i >= len(c.symbols) {
		return Boundary
	}
	return c.symbols[i]
}

// accepts reports whether word is eligible for training: at least two runes,
// all of them in the charset.
func (c Charset) accepts(word string) bool {
	if len(c.symbols) == 0 || strings.ContainsRune(word, Boundary) {
		return false
	}
	n := 0
	for _, r := range word {
		if !c.Contains(r) {
			return false
		}
		n++
	}
	return n >= 2
}
