package pseudoword

import (
	"fmt"
	"io"
	"log/slog"
)

// Model is a trained pseudoword generator. It owns its Matrix for its whole
// lifetime and exposes no way to modify it, so a *Model may be used from
// several goroutines at once.
//
// The zero value is an untrained model: it generates empty words and has a
// density of zero.
type Model struct {
	matrix *Matrix
	words  int
	logger *slog.Logger
}

// NewModel trains a Model on corpus. A non-positive order is replaced with
// DefaultOrder. It returns an *InvalidSeedError when corpus is empty or none
// of its words are eligible for training under charset.
func NewModel(corpus []string, order int, charset Charset) (*Model, error) {
	if len(corpus) == 0 {
		return nil, &InvalidSeedError{Reason: "seed is empty"}
	}

	eligible := 0
	for _, word := range corpus {
		if charset.accepts(word) {
			eligible++
		}
	}
	if eligible == 0 {
		return nil, &InvalidSeedError{
			Words:  len(corpus),
			Reason: fmt.Sprintf("none of the %d seed words are eligible for training", len(corpus)),
		}
	}

	return &Model{
		matrix: BuildMatrix(corpus, NormalizeOrder(order), charset),
		words:  eligible,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Matrix returns the model's read-only transition matrix.
func (m *Model) Matrix() *Matrix {
	return m.matrix
}

// Order returns the model's maximum context length.
func (m *Model) Order() int {
	return m.matrix.Order()
}

// Charset returns the charset the model was trained with.
func (m *Model) Charset() Charset {
	return m.matrix.Charset()
}

// TrainingWords returns the number of seed words that were eligible for training.
func (m *Model) TrainingWords() int {
	return m.words
}

func (m *Model) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.logger
}
