package pseudoword

import (
	"strings"
	"testing"
)

// fixedSource replays a fixed sequence of draws, reduced modulo n. Negative
// draws count back from the top of the range, so -1 is always n-1. It counts
// how many draws were requested.
type fixedSource struct {
	draws []int
	calls int
}

func (s *fixedSource) IntN(n int) int {
	d := s.draws[s.calls%len(s.draws)]
	s.calls++
	return ((d % n) + n) % n
}

// setupTestModel trains a model and fails the test on error.
func setupTestModel(t *testing.T, corpus []string, order int, charset string) *Model {
	t.Helper()
	m, err := NewModel(corpus, order, NewCharset(charset))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

// snapshot flattens a matrix into comparable form.
func snapshot(m *Matrix) map[Context][]Outcome {
	out := make(map[Context][]Outcome)
	for _, ctx := range m.Contexts() {
		outcomes, _ := m.Outcomes(ctx)
		out[ctx] = outcomes
	}
	return out
}

const benchmarkSeed = `alder birch cedar cypress elm fir hawthorn hazel hemlock hickory holly
juniper larch linden maple oak olive pine poplar redwood rowan sequoia spruce sycamore
tamarack willow yew acacia almond ash aspen baobab beech buckeye butternut catalpa
chestnut dogwood ebony eucalyptus ginkgo hornbeam laurel magnolia mahogany mulberry`

func benchmarkCorpus() []string {
	return ParseSeed(strings.ReplaceAll(benchmarkSeed, "\n", " "))
}
