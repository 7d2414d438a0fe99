// Package method implements the shared forecast/analysis cycle of the
// reference assimilation methods. The cycle owns the running estimate and
// the per-step ordering of diagnostic assessments; everything that differs
// between methods sits behind the Variant interface.
package method

import (
	baseline "github.com/milosgajdos/go-baseline"
	"gonum.org/v1/gonum/mat"
)

// Variant supplies the method-specific pieces of an assimilation cycle:
// the prior, the forecast covariance interpolation and the Kalman gain
// based analysis update. Variants are created fully resolved: whatever
// statistics or gains they need are computed at construction and the
// configuration never mutates during a run.
type Variant interface {
	// InitialEstimate returns the estimate assessed at step 0, before
	// any stepping begins
	InitialEstimate() (mat.Vector, mat.Symmetric)
	// Forecast returns the forecast mean at the tick given the previous
	// mean, updating any interpolated covariance along the way
	Forecast(prop baseline.Propagator, mu mat.Vector, tick baseline.Tick) (mat.Vector, error)
	// Analyzes reports whether observation steps trigger an analysis
	Analyzes() bool
	// ForecastEstimate returns the pre-analysis assessment values at an
	// observation step
	ForecastEstimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric)
	// Analyze corrects the forecast mean with observation y and refits
	// the covariance interpolation anchored at the analysis step
	Analyze(mu, y mat.Vector, tick baseline.Tick) (mat.Vector, error)
	// Estimate returns the per-step assessment values after any analysis
	Estimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric)
}
