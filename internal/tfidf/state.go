package tfidf

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/cinevec/cinevec/internal/nlp"
)

// state is the serialized form of a trained model: learned numeric state and
// parameters only. The tokenizer holds runtime handles (a loaded dictionary)
// and is reattached via dependency injection on load, never serialized.
type state struct {
	Params     Params    `json:"params"`
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
}

// MarshalState serializes the trained model into an opaque blob.
func (v *Vectorizer) MarshalState() ([]byte, error) {
	if !v.Trained() {
		return nil, fmt.Errorf("marshal state: model not trained")
	}
	data, err := json.Marshal(state{
		Params:     v.params,
		Vocabulary: v.terms,
		IDF:        v.idf,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// FromState restores a trained vectorizer from a persisted blob and attaches
// the tokenizer capability.
func FromState(data []byte, tok nlp.Tokenizer) (*Vectorizer, error) {
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	if len(st.Vocabulary) != len(st.IDF) {
		return nil, fmt.Errorf("unmarshal state: vocabulary has %d terms but %d idf weights",
			len(st.Vocabulary), len(st.IDF))
	}

	vocab := make(map[string]int, len(st.Vocabulary))
	for i, term := range st.Vocabulary {
		vocab[term] = i
	}

	return &Vectorizer{
		params: st.Params,
		tok:    tok,
		vocab:  vocab,
		terms:  st.Vocabulary,
		idf:    st.IDF,
	}, nil
}
