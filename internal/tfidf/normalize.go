package tfidf

// FitDim maps a weight vector onto an exact target dimension. Shorter
// vectors are zero-padded on the right; longer ones are truncated by dropping
// trailing components. Vocabulary column order is lexicographic, not ranked
// by importance, so truncation discards arbitrary terms; training caps the
// vocabulary at the target dimension so in practice no truncation occurs.
func FitDim(v []float32, dim int) []float32 {
	switch {
	case len(v) == dim:
		return v
	case len(v) > dim:
		return v[:dim]
	default:
		out := make([]float32, dim)
		copy(out, v)
		return out
	}
}
