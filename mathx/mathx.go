package mathx

import (
	"math"

	omwmathx "github.com/sw965/omw/mathx"
	"gonum.org/v1/gonum/floats"
)

// IncrementalMean returns the running mean after adding x as the n-th sample.
// n must already include x.
func IncrementalMean(mean, x float64, n int) float64 {
	return mean + (x-mean)/float64(n)
}

// Softmax writes softmax(xs/temperature) into dst and returns it.
// dst is reallocated only when its length differs from xs.
// max(xs) is subtracted before dividing by temperature, so every exponent is
// <= 0 and the maximum contributes exactly exp(0).
func Softmax(dst, xs []float64, temperature float64) []float64 {
	if len(dst) != len(xs) {
		dst = make([]float64, len(xs))
	}
	if len(xs) == 0 {
		return dst
	}

	maxX := floats.Max(xs)
	for i, x := range xs {
		dst[i] = math.Exp((x - maxX) / temperature)
	}
	sum := floats.Sum(dst)
	floats.Scale(1.0/sum, dst)
	return dst
}

// ArgMax returns the lowest index of the maximum of xs.
func ArgMax(xs []float64) int {
	return floats.MaxIdx(xs)
}

// Round rounds x to digits decimal places. Values too large to scale are
// returned unchanged.
func Round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	scaled := x * p
	if math.IsInf(scaled, 0) {
		return x
	}
	return math.Round(scaled) / p
}

func IsFinite(x float64) bool {
	return !omwmathx.IsNaN(x) && !omwmathx.IsInf(x, 0)
}
