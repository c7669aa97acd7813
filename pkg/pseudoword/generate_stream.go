package pseudoword

import "context"

// GenerateStream generates words in the background and returns a read-only
// channel of them. It produces count words, or keeps going until ctx is
// cancelled when count is not positive. The channel is closed once generation
// is complete or the context is cancelled.
//
// A Source passed with WithRand is used only by the stream's goroutine.
func (m *Model) GenerateStream(ctx context.Context, count int, opts ...GenerateOption) <-chan string {
	words := make(chan string)

	go func() {
		defer close(words)
		for i := 0; count <= 0 || i < count; i++ {
			word := m.GenerateWord(opts...)
			select {
			case <-ctx.Done():
				m.log().DebugContext(ctx, "Word stream cancelled",
					"generated", i,
					"error", ctx.Err(),
				)
				return
			case words <- word:
			}
		}
	}()

	return words
}
