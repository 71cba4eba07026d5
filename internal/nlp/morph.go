package nlp

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Parts of speech retained by the morphological tokenizer. Everything else
// (particles, auxiliaries, punctuation) carries little content signal and is
// discarded.
const (
	posNoun      = "名詞"
	posVerb      = "動詞"
	posAdjective = "形容詞"
)

// Morph is a morphological-analysis tokenizer. It segments text into
// morphemes, normalizes each to its dictionary base form, and keeps only
// nouns, verbs, and adjectives.
//
// The underlying analyzer holds a loaded dictionary and is read-only after
// construction, so a single Morph is safe for concurrent use. It is not
// serializable; the vocabulary model reattaches it after loading persisted
// state.
type Morph struct {
	t *tokenizer.Tokenizer
}

// NewMorph builds a tokenizer over the bundled IPA dictionary.
func NewMorph() (*Morph, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("build morphological tokenizer: %w", err)
	}
	return &Morph{t: t}, nil
}

// Tokenize segments text and returns base-form tokens tagged as noun, verb,
// or adjective. Empty input yields an empty slice.
func (m *Morph) Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	morphemes := m.t.Tokenize(text)
	tokens := make([]string, 0, len(morphemes))

	for _, tok := range morphemes {
		pos := tok.POS()
		if len(pos) == 0 {
			continue
		}
		switch pos[0] {
		case posNoun, posVerb, posAdjective:
		default:
			continue
		}

		// Stem normalization: dictionary base form when available,
		// surface form otherwise (unknown words have no base form).
		if base, ok := tok.BaseForm(); ok && base != "" && base != "*" {
			tokens = append(tokens, base)
			continue
		}
		tokens = append(tokens, tok.Surface)
	}

	return tokens
}
