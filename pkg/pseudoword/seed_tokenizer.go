package pseudoword

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// maxSeedLine caps a single line of seed input read by a SeedStream.
const maxSeedLine = 1 << 20

// SeedTokenizer splits seed text into candidate training words. It does not
// filter by charset; ineligible words are dropped later by the model builder.
// Its behavior can be customized with functional options.
type SeedTokenizer struct {
	wordRegex *regexp.Regexp
	lowercase bool
}

// TokenizerOption is a function that configures a SeedTokenizer.
type TokenizerOption func(*SeedTokenizer)

// WithWordRegex sets the regex used to find words in each line of input.
// Default: `[^\s,;:.!?"()\[\]]+`
func WithWordRegex(wordRegex string) TokenizerOption {
	return func(t *SeedTokenizer) {
		t.wordRegex = regexp.MustCompile(wordRegex)
	}
}

// WithLowercase sets whether words are lowercased before they are returned.
// Default: true
func WithLowercase(lower bool) TokenizerOption {
	return func(t *SeedTokenizer) {
		t.lowercase = lower
	}
}

// NewSeedTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more TokenizerOption functions.
func NewSeedTokenizer(opts ...TokenizerOption) *SeedTokenizer {
	t := &SeedTokenizer{
		// Anything between whitespace and common punctuation is a candidate word.
		wordRegex: regexp.MustCompile(`[^\s,;:.!?"()\[\]]+`),
		lowercase: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewStream returns a stateful SeedStream reading from r.
func (t *SeedTokenizer) NewStream(r io.Reader) *SeedStream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSeedLine)
	return &SeedStream{
		scanner:   scanner,
		wordRegex: t.wordRegex,
		lowercase: t.lowercase,
	}
}

// ReadAll consumes r and returns every word in order.
func (t *SeedTokenizer) ReadAll(r io.Reader) ([]string, error) {
	stream := t.NewStream(r)
	var words []string
	for {
		word, err := stream.Next()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
}

// SeedStream is a stateful word reader over a single io.Reader.
type SeedStream struct {
	scanner   *bufio.Scanner
	buffer    []string
	wordRegex *regexp.Regexp
	lowercase bool
}

// Next returns the next word from the stream. When the stream is exhausted it
// returns io.EOF. Any other error comes from the underlying reader.
func (s *SeedStream) Next() (string, error) {
	for len(s.buffer) == 0 {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		s.buffer = s.wordRegex.FindAllString(s.scanner.Text(), -1)
	}

	word := s.buffer[0]
	s.buffer = s.buffer[1:]
	if s.lowercase {
		word = strings.ToLower(word)
	}
	return word, nil
}
