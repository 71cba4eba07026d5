// Package tfidf implements the trained vocabulary model that turns composed
// item documents into fixed-parameter TF-IDF weight vectors.
package tfidf

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/cinevec/cinevec/internal/domain"
	"github.com/cinevec/cinevec/internal/nlp"
)

// Params are the training parameters of the vocabulary model. They are fixed
// for the lifetime of a trained model and travel with its persisted state.
type Params struct {
	// MaxFeatures caps the vocabulary size; the top terms by total corpus
	// count are kept.
	MaxFeatures int `json:"max_features"`
	// MinDocFreq drops terms appearing in fewer documents, protecting
	// against overfitting to rare tokens.
	MinDocFreq int `json:"min_doc_freq"`
	// MaxDocFreqRatio drops terms appearing in more than this fraction of
	// documents; near-universal terms carry no information.
	MaxDocFreqRatio float64 `json:"max_doc_freq_ratio"`
	// NGramMin and NGramMax bound the contiguous token-sequence lengths
	// considered as vocabulary candidates.
	NGramMin int `json:"ngram_min"`
	NGramMax int `json:"ngram_max"`
	// SublinearTF applies logarithmic dampening (1 + ln(count)) to raw
	// term counts before IDF weighting.
	SublinearTF bool `json:"sublinear_tf"`
}

// DefaultParams returns the fixed training configuration: vocabulary capped
// at the vector dimension, document-frequency bounds [2, 0.7], unigrams and
// bigrams, sublinear TF, L2 output norm.
func DefaultParams() Params {
	return Params{
		MaxFeatures:     domain.VectorDim,
		MinDocFreq:      2,
		MaxDocFreqRatio: 0.7,
		NGramMin:        1,
		NGramMax:        2,
		SublinearTF:     true,
	}
}

// Vectorizer is the vocabulary model. Fit learns a vocabulary and IDF weights
// from a corpus; Transform maps any text onto that vocabulary. The tokenizer
// is an injected capability and is never part of the serialized state.
type Vectorizer struct {
	params Params
	tok    nlp.Tokenizer

	vocab map[string]int // term -> column index
	terms []string       // column index -> term, lexicographic order
	idf   []float64      // column index -> inverse document frequency
}

// New creates an untrained vectorizer.
func New(tok nlp.Tokenizer, params Params) *Vectorizer {
	return &Vectorizer{params: params, tok: tok}
}

// SetTokenizer reattaches the tokenizer capability, e.g. after loading
// persisted state.
func (v *Vectorizer) SetTokenizer(tok nlp.Tokenizer) { v.tok = tok }

// Params returns the training parameters.
func (v *Vectorizer) Params() Params { return v.params }

// Trained reports whether the model holds a learned vocabulary.
func (v *Vectorizer) Trained() bool { return v.vocab != nil }

// VocabSize returns the learned vocabulary size (0 when untrained).
func (v *Vectorizer) VocabSize() int { return len(v.terms) }

// Fit learns the vocabulary and IDF weights from a corpus of documents.
// Training always rebuilds the model from scratch; there is no incremental
// update.
func (v *Vectorizer) Fit(docs []string) error {
	if v.tok == nil {
		return fmt.Errorf("fit: tokenizer not attached: %w", domain.ErrModelNotTrained)
	}
	if len(docs) == 0 {
		return fmt.Errorf("fit: empty corpus")
	}

	docFreq := make(map[string]int)
	totalCount := make(map[string]int)

	for _, doc := range docs {
		counts := v.termCounts(doc)
		for term, c := range counts {
			docFreq[term]++
			totalCount[term] += c
		}
	}

	n := len(docs)
	maxDF := int(v.params.MaxDocFreqRatio * float64(n))

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < v.params.MinDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("fit: no terms survive document-frequency bounds [%d, %d] over %d docs",
			v.params.MinDocFreq, maxDF, n)
	}

	// Cap the vocabulary: top terms by total corpus count, ties broken
	// lexicographically.
	if v.params.MaxFeatures > 0 && len(candidates) > v.params.MaxFeatures {
		slices.SortFunc(candidates, func(a, b string) int {
			if c := cmp.Compare(totalCount[b], totalCount[a]); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		candidates = candidates[:v.params.MaxFeatures]
	}

	// Column indices follow lexicographic term order.
	slices.Sort(candidates)

	vocab := make(map[string]int, len(candidates))
	idf := make([]float64, len(candidates))
	for i, term := range candidates {
		vocab[term] = i
		// Smoothed IDF: ln((1+N)/(1+df)) + 1.
		idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	v.vocab = vocab
	v.terms = candidates
	v.idf = idf
	return nil
}

// Transform maps text onto the trained vocabulary: sublinear term frequency
// times stored IDF, L2-normalized. Tokens outside the vocabulary contribute
// zero weight; text with no in-vocabulary tokens yields the zero vector.
// Fails only when the model is untrained or the tokenizer is detached.
func (v *Vectorizer) Transform(text string) ([]float32, error) {
	if !v.Trained() {
		return nil, domain.ErrModelNotTrained
	}
	if v.tok == nil {
		return nil, fmt.Errorf("transform: tokenizer not attached: %w", domain.ErrModelNotTrained)
	}

	weights := make([]float64, len(v.terms))
	var sumSq float64

	for term, count := range v.termCounts(text) {
		col, ok := v.vocab[term]
		if !ok {
			continue
		}
		tf := float64(count)
		if v.params.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.idf[col]
		weights[col] = w
		sumSq += w * w
	}

	out := make([]float32, len(weights))
	if sumSq == 0 {
		return out, nil
	}
	norm := math.Sqrt(sumSq)
	for i, w := range weights {
		out[i] = float32(w / norm)
	}
	return out, nil
}

// termCounts tokenizes text and counts every n-gram in the configured span.
func (v *Vectorizer) termCounts(text string) map[string]int {
	tokens := v.tok.Tokenize(text)
	counts := make(map[string]int)

	lo, hi := v.params.NGramMin, v.params.NGramMax
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}

	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
