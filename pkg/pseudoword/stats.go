package pseudoword

import "unicode/utf8"

// ModelStats holds aggregated statistics for a single Model.
type ModelStats struct {
	Order             int         `json:"order"`              // The maximum context length
	CharsetSize       int         `json:"charset_size"`       // The number of symbols in the charset
	TrainingWords     int         `json:"training_words"`     // Seed words that were eligible for training
	Contexts          int         `json:"contexts"`           // Distinct contexts in the matrix
	ContextsByLength  map[int]int `json:"contexts_by_length"` // Context length -> count; BoundaryContext has length 0
	TotalObservations int         `json:"total_observations"` // Sum of every context's total
	StartingSymbols   int         `json:"starting_symbols"`   // Distinct symbols a word can start with
	Density           float64     `json:"density"`            // See Matrix.Density
}

// Density returns the ratio of distinct observed contexts to the maximum
// number of contexts possible for the matrix's order and charset size, as a
// fraction in [0, 1]. The maximum is the sum of charsetSize^i for i from 0 to
// order, where the i=0 term counts BoundaryContext. An empty matrix has a
// density of zero.
func (m *Matrix) Density() float64 {
	if m.Len() == 0 {
		return 0
	}
	maxContexts := maxContexts(m.order, m.charset.Len())
	if maxContexts <= 0 {
		return 0
	}
	return float64(len(m.transitions)) / maxContexts
}

func maxContexts(order, charsetSize int) float64 {
	total, term := 0.0, 1.0
	for i := 0; i <= order; i++ {
		total += term
		term *= float64(charsetSize)
	}
	return total
}

// Density returns the density of the model's matrix. See Matrix.Density.
func (m *Model) Density() float64 {
	return m.matrix.Density()
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Order:            m.matrix.Order(),
		CharsetSize:      m.matrix.Charset().Len(),
		TrainingWords:    m.words,
		Contexts:         m.matrix.Len(),
		ContextsByLength: make(map[int]int),
		Density:          m.matrix.Density(),
	}
	if m.matrix == nil {
		return stats
	}
	for ctx, t := range m.matrix.transitions {
		length := 0
		if ctx != BoundaryContext {
			length = utf8.RuneCountInString(string(ctx))
		}
		stats.ContextsByLength[length]++
		stats.TotalObservations += t.total
	}
	if starters, ok := m.matrix.Outcomes(BoundaryContext); ok {
		for _, o := range starters {
			if o.Symbol != Boundary {
				stats.StartingSymbols++
			}
		}
	}
	return stats
}
