package domain

import "math"

// VectorDim is the fixed dimension of every persisted item vector.
const VectorDim = 512

// MeanVector computes the component-wise arithmetic mean of the given
// vectors. All vectors must share the same length; returns nil for an empty
// input.
func MeanVector(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			sum[i] += float64(x)
		}
	}

	mean := make([]float32, dim)
	n := float64(len(vectors))
	for i := range sum {
		mean[i] = float32(sum[i] / n)
	}
	return mean
}

// L2Normalize scales v to unit Euclidean norm. A zero vector is returned
// unchanged rather than dividing by zero.
func L2Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
