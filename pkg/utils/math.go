package utils

import "math"

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// If the norm is zero, the slice is unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}

// Clamp restricts x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MeanVectors averages same-dimension vectors component-wise and normalizes the
// result to unit L2 norm. Returns nil when vecs is empty or dimensions disagree.
func MeanVectors(vecs ...[]float32) []float32 {
	if len(vecs) == 0 {
		return nil
	}
	dim := len(vecs[0])
	out := make([]float32, dim)
	for _, v := range vecs {
		if len(v) != dim {
			return nil
		}
		for i := range v {
			out[i] += v[i]
		}
	}
	inv := 1.0 / float32(len(vecs))
	for i := range out {
		out[i] *= inv
	}
	NormalizeL2(out)
	return out
}
