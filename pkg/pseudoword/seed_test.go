package pseudoword

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestNewCharset(t *testing.T) {
	cs := NewCharset("abca$bé")
	if got := cs.String(); got != "abcé" {
		t.Errorf("expected \"abcé\", got %q", got)
	}
	if cs.Len() != 4 {
		t.Errorf("expected 4 symbols, got %d", cs.Len())
	}
	if cs.Contains(Boundary) {
		t.Error("charset must never contain the boundary token")
	}
	if !cs.Contains('é') || cs.Contains('z') {
		t.Error("unexpected membership results")
	}

	symbols := cs.Symbols()
	symbols[0] = 'z'
	if cs.Contains('z') {
		t.Error("Symbols() must return a copy")
	}
}

func TestSanitizeCharset(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty uses default", input: "", expected: DefaultCharset},
		{name: "Only boundary uses default", input: "$$", expected: DefaultCharset},
		{name: "Boundary removed", input: "a$b", expected: "ab"},
		{name: "Duplicates removed", input: "xyzzy", expected: "xyz"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeCharset(tc.input).String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeOrder(t *testing.T) {
	for in, want := range map[int]int{-3: DefaultOrder, 0: DefaultOrder, 1: 1, 4: 4} {
		if got := NormalizeOrder(in); got != want {
			t.Errorf("NormalizeOrder(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	got := ParseSeed("  Lorem IPSUM\tdolor\nsit ")
	want := []string{"lorem", "ipsum", "dolor", "sit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := ParseSeed("   "); len(got) != 0 {
		t.Errorf("expected no words, got %v", got)
	}
}

func TestParseSeedList(t *testing.T) {
	got := ParseSeedList([]string{"Alpha", " ", "BETA ", ""})
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSeedTokenizer(t *testing.T) {
	input := "Hello, World! It's a (small) test.\nSecond line; more words?"

	testCases := []struct {
		name     string
		opts     []TokenizerOption
		expected []string
	}{
		{
			name:     "Defaults",
			expected: []string{"hello", "world", "it's", "a", "small", "test", "second", "line", "more", "words"},
		},
		{
			name:     "Keep case",
			opts:     []TokenizerOption{WithLowercase(false)},
			expected: []string{"Hello", "World", "It's", "a", "small", "test", "Second", "line", "more", "words"},
		},
		{
			name:     "Custom regex",
			opts:     []TokenizerOption{WithWordRegex(`[a-z]+`)},
			expected: []string{"ello", "orld", "t", "s", "a", "small", "test", "econd", "line", "more", "words"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewSeedTokenizer(tc.opts...).ReadAll(strings.NewReader(input))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestSeedStream(t *testing.T) {
	stream := NewSeedTokenizer().NewStream(strings.NewReader("one two"))
	for _, want := range []string{"one", "two"} {
		got, err := stream.Next()
		if err != nil || got != want {
			t.Fatalf("Next() = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}

	if _, err := NewSeedTokenizer().ReadAll(failingReader{}); err == nil {
		t.Error("expected the reader error to be returned")
	}
}
