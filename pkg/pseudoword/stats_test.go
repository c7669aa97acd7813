package pseudoword

import (
	"math"
	"testing"
)

func TestDensity(t *testing.T) {
	m := setupTestModel(t, []string{"ab", "ac"}, 1, "abc")

	d := m.Density()
	if d <= 0 || d > 1 {
		t.Fatalf("expected density in (0, 1], got %v", d)
	}
	// Contexts $, a, b, c out of 1 + 3.
	if d != 1 {
		t.Errorf("expected density 1, got %v", d)
	}

	before := snapshot(m.Matrix())
	_ = m.Density()
	if len(snapshot(m.Matrix())) != len(before) {
		t.Error("Density() changed the matrix")
	}
}

func TestDensityPartial(t *testing.T) {
	m := setupTestModel(t, []string{"ab"}, 2, "abcd")

	// Contexts $, a, b, ab out of 1 + 4 + 16.
	want := 4.0 / 21.0
	if got := m.Density(); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected density %v, got %v", want, got)
	}
}

func TestDensityDegenerate(t *testing.T) {
	var zero Model
	if got := zero.Density(); got != 0 {
		t.Errorf("zero model: expected density 0, got %v", got)
	}
	empty := &Model{matrix: BuildMatrix([]string{"x"}, 2, NewCharset("abc"))}
	if got := empty.Density(); got != 0 {
		t.Errorf("empty model: expected density 0, got %v", got)
	}
}

func TestStats(t *testing.T) {
	m := setupTestModel(t, []string{"ab", "ba", "abc"}, 2, "abc")
	stats := m.Stats()

	if stats.Order != 2 || stats.CharsetSize != 3 || stats.TrainingWords != 3 {
		t.Errorf("unexpected header stats: %+v", stats)
	}
	if stats.Contexts != m.Matrix().Len() {
		t.Errorf("expected %d contexts, got %d", m.Matrix().Len(), stats.Contexts)
	}
	if stats.ContextsByLength[0] != 1 {
		t.Errorf("expected exactly one boundary context, got %d", stats.ContextsByLength[0])
	}
	sum := 0
	for _, n := range stats.ContextsByLength {
		sum += n
	}
	if sum != stats.Contexts {
		t.Errorf("contexts by length sum to %d, want %d", sum, stats.Contexts)
	}
	// Words start with 'a' or 'b'.
	if stats.StartingSymbols != 2 {
		t.Errorf("expected 2 starting symbols, got %d", stats.StartingSymbols)
	}
	if stats.Density != m.Density() {
		t.Errorf("expected density %v, got %v", m.Density(), stats.Density)
	}

	observations := 0
	for _, ctx := range m.Matrix().Contexts() {
		observations += m.Matrix().Total(ctx)
	}
	if stats.TotalObservations != observations {
		t.Errorf("expected %d observations, got %d", observations, stats.TotalObservations)
	}
}
