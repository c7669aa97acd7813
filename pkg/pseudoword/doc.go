/*
Package pseudoword builds character-level Markov models from a small seed
vocabulary and uses them to synthesize pseudowords: strings that look like
they could belong to the seed without being copied from it.

A Model is built once from a corpus, an order and a Charset. Training walks
every eligible word at every context length from 1 up to the order, so a
context that was never seen at full length can back off to a shorter one
during generation. The resulting Matrix is never modified again, which makes
a single Model safe to share between goroutines.

	charset := pseudoword.SanitizeCharset("")
	model, err := pseudoword.NewModel(pseudoword.ParseSeed("lorem ipsum dolor sit amet"), 2, charset)
	if err != nil {
		// errors.Is(err, pseudoword.ErrInvalidSeed)
	}
	word := model.GenerateWord(pseudoword.WithMinLength(4), pseudoword.WithMaxLength(12))

Randomness is supplied through the Source interface. A *rand.Rand from
math/rand/v2 satisfies it and can be passed with WithRand for reproducible
output.
*/
package pseudoword
