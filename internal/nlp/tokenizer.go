// Package nlp provides language-aware tokenization for the vocabulary model.
package nlp

// Tokenizer splits text into normalized word tokens. Implementations must be
// pure functions of their input: no shared mutable state across calls, safe
// for concurrent use. Empty input yields an empty sequence.
//
// The vocabulary model depends only on this contract; any analyzer producing
// a token sequence is substitutable.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

// Tokenize calls f.
func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }
