// Package clim provides the Climatology reference method: the estimate is
// pinned at the climatological mean and covariance of the truth trajectory
// for the whole run. Observations are ignored. Note that the climatology
// is computed from truth, which can be unfairly advantageous if the
// simulation window is short compared to the mixing time.
package clim

import (
	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/climat"
	"gonum.org/v1/gonum/mat"
)

// Clim is the Climatology method variant
type Clim struct {
	// muC is the climatological mean
	muC *mat.VecDense
	// pc is the climatological covariance
	pc *mat.SymDense
}

// New creates a Climatology variant from the truth trajectory xx, one
// state sample per row.
// It fails with error if the climatology cannot be estimated from xx.
func New(xx *mat.Dense) (*Clim, error) {
	muC, pc, err := climat.Estimate(xx)
	if err != nil {
		return nil, err
	}

	return &Clim{
		muC: muC,
		pc:  pc,
	}, nil
}

// InitialEstimate returns the climatological mean and covariance.
func (c *Clim) InitialEstimate() (mat.Vector, mat.Symmetric) {
	return c.estimate()
}

// Forecast keeps the mean pinned at the climatological mean: the
// dynamical model is never consulted.
func (c *Clim) Forecast(prop baseline.Propagator, mu mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	mean, _ := c.estimate()
	return mean, nil
}

// Analyzes returns false: observations never correct the estimate.
func (c *Clim) Analyzes() bool {
	return false
}

// ForecastEstimate returns the climatological mean and covariance.
func (c *Clim) ForecastEstimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	return c.estimate()
}

// Analyze returns mu unchanged.
func (c *Clim) Analyze(mu, y mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	return mu, nil
}

// Estimate returns the climatological mean and covariance: the same
// values at every tick of the run.
func (c *Clim) Estimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	return c.estimate()
}

// Mean returns the climatological mean.
func (c *Clim) Mean() mat.Vector {
	mean, _ := c.estimate()
	return mean
}

// Cov returns the climatological covariance.
func (c *Clim) Cov() mat.Symmetric {
	_, cov := c.estimate()
	return cov
}

func (c *Clim) estimate() (mat.Vector, mat.Symmetric) {
	mu := mat.NewVecDense(c.muC.Len(), nil)
	mu.CloneFromVec(c.muC)

	cov := mat.NewSymDense(c.pc.SymmetricDim(), nil)
	cov.CopySym(c.pc)

	return mu, cov
}
