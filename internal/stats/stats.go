// Package stats provides the small set of numeric helpers the feature
// and RFI packages need: means, population standard deviation, simple
// linear regression, and discrete autocorrelation over binary sequences.
package stats

import "math"

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs (divisor n,
// not n-1), or 0 for fewer than one element.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// WeightedMean returns the weighted average of values. It returns 0 when
// the slices are empty, mismatched, or the weights sum to 0.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	var num, den float64
	for i, v := range values {
		num += v * weights[i]
		den += weights[i]
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// RSquared returns the squared Pearson correlation coefficient of a simple
// linear regression of ys on xs. When either variable has zero variance
// the correlation is undefined and 0 is returned.
func RSquared(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxx, syy, sxy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	r := sxy / math.Sqrt(sxx*syy)
	return r * r
}

// Autocorrelation computes the raw (unnormalized) autocorrelation of a
// binary sequence with itself at non-negative lags. Element k holds
// sum(seq[i]*seq[i+k]); element 0 is the number of active days.
func Autocorrelation(seq []int8) []float64 {
	n := len(seq)
	out := make([]float64, n)
	for lag := 0; lag < n; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += float64(seq[i]) * float64(seq[i+lag])
		}
		out[lag] = sum
	}
	return out
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
