// Package corrlen estimates a decorrelation length scale from a flattened
// ensemble of deviations-from-mean. The length sets the time constant of
// the sigmoid used to interpolate covariance between analyses.
package corrlen

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// MaxLength is the sentinel returned for degenerate input. A length
	// this large makes the fitted sigmoid effectively flat.
	MaxLength = 1e9

	// eps is the variance and autocorrelation cutoff below which input is
	// treated as degenerate
	eps = 1e-9
)

// Ravel flattens the anomaly matrix a (one sample per row, one state
// component per column) into a single series, one state component at a
// time: the full time series of component 0 first, then component 1, and
// so on. The time index varies fastest within the output. Transposing this
// convention would estimate the decay across state components instead of
// across time.
func Ravel(a *mat.Dense) []float64 {
	rows, cols := a.Dims()
	xx := make([]float64, 0, rows*cols)

	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			xx = append(xx, a.At(i, j))
		}
	}

	return xx
}

// Estimate returns the characteristic decay length of the autocorrelation
// of xx, assuming an exponential correlation function: with lag-1
// autocorrelation r, corr(k) = r^k = exp(-k/L) so L = 1/ln(1/r).
// Degenerate input (fewer than 2 values, near-zero variance, or r at or
// above 1) returns the sentinel MaxLength; anti-correlated or memoryless
// series (r near or below zero) return 1. The result is always positive.
func Estimate(xx []float64) float64 {
	n := len(xx)
	if n < 2 {
		return MaxLength
	}

	var mean float64
	for _, x := range xx {
		mean += x
	}
	mean /= float64(n)

	var c0, c1 float64
	for i, x := range xx {
		d := x - mean
		c0 += d * d
		if i < n-1 {
			c1 += d * (xx[i+1] - mean)
		}
	}

	if c0 < eps {
		return MaxLength
	}

	r := c1 / c0
	if r >= 1-eps {
		return MaxLength
	}
	if r <= eps {
		return 1
	}

	return 1 / math.Log(1/r)
}
