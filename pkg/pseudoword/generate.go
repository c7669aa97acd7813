package pseudoword

import (
	"log/slog"
	"unicode/utf8"
)

// generateOptions is used by the generate functions to configure default options.
type generateOptions struct {
	minLength   int
	maxLength   int
	maxAttempts int
	rng         Source
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in GenerateWord and GenerateStream.
type GenerateOption func(*generateOptions)

// WithMinLength sets the minimum number of symbols a word should have. Words
// that come out shorter are discarded and generation is retried, up to the
// attempt limit. A value of 0 disables the check.
func WithMinLength(n int) GenerateOption {
	return func(o *generateOptions) { o.minLength = n }
}

// WithMaxLength sets the maximum number of symbols in a word. Non-positive
// values fall back to DefaultMaxLength.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithMaxAttempts sets how many words may be generated while trying to reach
// the minimum length. Non-positive values fall back to DefaultMaxAttempts.
func WithMaxAttempts(n int) GenerateOption {
	return func(o *generateOptions) { o.maxAttempts = n }
}

// WithRand sets the random source used for sampling. By default the
// top-level math/rand/v2 functions are used.
func WithRand(src Source) GenerateOption {
	return func(o *generateOptions) { o.rng = src }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength:   DefaultMaxLength,
		maxAttempts: DefaultMaxAttempts,
		rng:         globalSource{},
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.maxLength < 1 {
		options.maxLength = DefaultMaxLength
	}
	if options.maxAttempts < 1 {
		options.maxAttempts = DefaultMaxAttempts
	}
	if options.minLength < 0 {
		options.minLength = 0
	}
	if options.rng == nil {
		options.rng = globalSource{}
	}
	return options
}

// GenerateWord builds a single pseudoword. It never fails: when the minimum
// length cannot be reached within the attempt limit, the last attempt is
// returned as is, and an untrained model returns an empty string.
func (m *Model) GenerateWord(opts ...GenerateOption) string {
	options := newGenerateOptions(opts)

	var word string
	for attempt := 1; attempt <= options.maxAttempts; attempt++ {
		word = m.generateAttempt(options)
		if utf8.RuneCountInString(word) >= options.minLength {
			return word
		}
		m.log().Debug("Generated word below minimum length, retrying",
			slog.String("word", word),
			slog.Int("min_length", options.minLength),
			slog.Int("attempt", attempt),
		)
	}

	m.log().Debug("Generation attempts exhausted, returning last attempt",
		slog.String("word", word),
		slog.Int("min_length", options.minLength),
		slog.Int("max_attempts", options.maxAttempts),
	)
	return word
}

// generateAttempt contains the main loop for building one word.
func (m *Model) generateAttempt(options *generateOptions) string {
	order := m.matrix.Order()
	out := make([]rune, 0, options.maxLength)
	for len(out) < options.maxLength {
		next := m.matrix.Next(contextOf(out, order), options.rng)
		if next == Boundary {
			break
		}
		out = append(out, next)
	}
	return string(out)
}
