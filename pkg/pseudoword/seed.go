package pseudoword

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultOrder is used when no positive order is supplied.
	DefaultOrder = 2
	// DefaultMaxLength is the longest word generated when no maximum is supplied.
	DefaultMaxLength = 20
	// DefaultMaxAttempts bounds the retries spent trying to reach a minimum length.
	DefaultMaxAttempts = 10
	// DefaultCharset is the alphabet used when none is supplied.
	DefaultCharset = "abcdefghijklmnopqrstuvwxyzáàãâäéèêëíìîïóòõôöúùûüçß"
)

// ErrInvalidSeed is returned, wrapped in an *InvalidSeedError, when no
// training words can be derived from a seed.
var ErrInvalidSeed = errors.New("invalid seed")

// InvalidSeedError describes why a seed could not produce a model.
type InvalidSeedError struct {
	Words  int    // Number of candidate words in the seed
	Reason string // Human-readable reason
}

func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("invalid seed: %s", e.Reason)
}

func (e *InvalidSeedError) Unwrap() error {
	return ErrInvalidSeed
}

// NormalizeOrder returns n, or DefaultOrder when n is not positive.
func NormalizeOrder(n int) int {
	if n < 1 {
		return DefaultOrder
	}
	return n
}

// SanitizeCharset builds a Charset from s with the Boundary rune removed.
// An empty result falls back to DefaultCharset.
func SanitizeCharset(s string) Charset {
	cs := NewCharset(s)
	if cs.Len() == 0 {
		return NewCharset(DefaultCharset)
	}
	return cs
}

// ParseSeed lowercases a raw seed string and splits it into words on
// whitespace.
func ParseSeed(raw string) []string {
	return strings.Fields(strings.ToLower(raw))
}

// ParseSeedList lowercases every entry of a seed list. Entries are kept in
// order; empty ones are dropped.
func ParseSeedList(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}
