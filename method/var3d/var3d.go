// Package var3d provides the 3D-Var reference method. The implementation
// is not "Var"-ish: there is no iterative optimization. It does the full
// analysis update in one step, the Kalman filter with a user specified
// background covariance, through B and XB.
package var3d

import (
	"fmt"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/climat"
	"github.com/milosgajdos/go-baseline/corrlen"
	bmat "github.com/milosgajdos/go-baseline/matrix"
	"github.com/milosgajdos/go-baseline/sigmoid"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Config selects the background covariance. It is resolved once
// at construction; the running method never mutates it.
type Config struct {
	// B is the background covariance; nil means the climatological
	// covariance estimated from the truth trajectory
	B mat.Symmetric
	// XB scales the background covariance
	XB float64
}

// Var3D is the 3D-Var method variant
type Var3D struct {
	// obs is the observation operator
	obs baseline.ObservationOperator
	// rn is the observation noise model
	rn baseline.Noise
	// b is the resolved background covariance
	b *mat.Dense
	// cc is the diagnostic reference covariance 2*cov(truth)
	cc *mat.SymDense
	// l is the correlation length setting the sigmoid time constant
	l float64
	// sm is the current sigmoid fit of the covariance trace ratio
	sm sigmoid.Curve
	// mu0 is the initial mean
	mu0 *mat.VecDense
	// p is the current diagnostic covariance; interpolated between
	// analyses, recomputed as (I - KG*H)*B at each analysis
	p *mat.Dense
}

// New creates a 3D-Var variant from the observation operator, the
// observation noise model, the truth trajectory xx (one state sample per
// row), the initial distribution and the background covariance spec.
// A nil config resolves to the climatological background with XB = 1.
// It fails with error if either of the following conditions is met:
//   - the config scale XB is not positive
//   - the climatology cannot be estimated from xx
//   - the sigmoid cannot be anchored at the initial trace ratio
func New(obs baseline.ObservationOperator, rn baseline.Noise, xx *mat.Dense, init baseline.InitCond, c *Config) (*Var3D, error) {
	if c == nil {
		c = &Config{XB: 1.0}
	}

	if c.XB <= 0 {
		return nil, fmt.Errorf("invalid background scale: %v", c.XB)
	}

	_, cov, err := climat.Estimate(xx)
	if err != nil {
		return nil, err
	}

	// resolve the background covariance once
	b := &mat.Dense{}
	if c.B != nil {
		if c.B.SymmetricDim() != cov.SymmetricDim() {
			return nil, fmt.Errorf("invalid background covariance dimension: %d", c.B.SymmetricDim())
		}
		b.CloneFrom(c.B)
	} else {
		b.CloneFrom(cov)
	}
	b.Scale(c.XB, b)

	cc := mat.NewSymDense(cov.SymmetricDim(), nil)
	cc.ScaleSym(2.0, cov)

	ac, err := climat.Anomalies(xx)
	if err != nil {
		return nil, err
	}
	l := corrlen.Estimate(corrlen.Ravel(ac))

	p := &mat.Dense{}
	p.CloneFrom(init.Cov())

	sm, err := sigmoid.Fit(mat.Trace(p)/mat.Trace(cc), l, 0)
	if err != nil {
		return nil, err
	}

	mu0 := &mat.VecDense{}
	mu0.CloneFromVec(init.State())

	return &Var3D{
		obs: obs,
		rn:  rn,
		b:   b,
		cc:  cc,
		l:   l,
		sm:  sm,
		mu0: mu0,
		p:   p,
	}, nil
}

// InitialEstimate returns the initial mean and covariance.
func (v *Var3D) InitialEstimate() (mat.Vector, mat.Symmetric) {
	mu := &mat.VecDense{}
	mu.CloneFromVec(v.mu0)

	return mu, bmat.Symmetrize(v.p)
}

// Forecast propagates the mean through the dynamical model and
// interpolates the diagnostic covariance as P = CC*S(k).
func (v *Var3D) Forecast(prop baseline.Propagator, mu mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	next, err := prop.Propagate(mu, tick.T-tick.DT, tick.DT)
	if err != nil {
		return nil, err
	}

	p := &mat.Dense{}
	p.Scale(v.sm(tick.K), v.cc)
	v.p = p

	return next, nil
}

// Analyzes returns true: every observation step corrects the mean.
func (v *Var3D) Analyzes() bool {
	return true
}

// ForecastEstimate returns the propagated mean and the interpolated
// covariance.
func (v *Var3D) ForecastEstimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	return mu, bmat.Symmetrize(v.p)
}

// Analyze corrects the forecast mean with observation y using the gain
// KG = B*H' / (H*B*H' + R) recomputed from the operator linearized at the
// current mean, recomputes the analysis covariance (I - KG*H)*B and
// refits the sigmoid anchored at the analysis step.
func (v *Var3D) Analyze(mu, y mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	h, err := v.obs.Linearize(mu, tick.T)
	if err != nil {
		return nil, fmt.Errorf("failed to linearize observation operator: %v", err)
	}

	pxy := &mat.Dense{}
	pxy.Mul(v.b, h.T())

	pyy := &mat.Dense{}
	pyy.Mul(h, pxy)
	pyy.Add(pyy, v.rn.Cov())

	kg, err := bmat.SolveRight(pxy, pyy)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Kalman gain: %v", err)
	}

	yf, err := v.obs.Observe(mu, tick.T)
	if err != nil {
		return nil, fmt.Errorf("failed to observe forecast mean: %v", err)
	}

	inn := &mat.VecDense{}
	inn.SubVec(y, yf)

	corr := &mat.Dense{}
	corr.Mul(kg, inn)

	next := &mat.VecDense{}
	next.CloneFromVec(mu)
	next.AddVec(next, corr.ColView(0))

	// re-calibrate the sigmoid with the new trace ratio Pa/CC
	m, _ := v.b.Dims()
	eye, err := matrix.NewDenseValIdentity(m, 1.0)
	if err != nil {
		return nil, err
	}

	kh := &mat.Dense{}
	kh.Mul(kg, h)
	kh.Sub(eye, kh)

	p := &mat.Dense{}
	p.Mul(kh, v.b)
	v.p = p

	sm, err := sigmoid.Fit(mat.Trace(p)/mat.Trace(v.cc), v.l, tick.K)
	if err != nil {
		return nil, err
	}
	v.sm = sm

	return next, nil
}

// Estimate returns the mean and the current diagnostic covariance.
func (v *Var3D) Estimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	return mu, bmat.Symmetrize(v.p)
}

// Background returns the resolved background covariance.
func (v *Var3D) Background() mat.Matrix {
	b := &mat.Dense{}
	b.CloneFrom(v.b)

	return b
}

// CorrLength returns the estimated correlation length.
func (v *Var3D) CorrLength() float64 {
	return v.l
}
