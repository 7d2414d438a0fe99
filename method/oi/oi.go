// Package oi provides the Optimal Interpolation reference method: the
// Kalman filter equations with a static prior taken from the climatology
// of the truth trajectory. The Kalman gain is computed once at
// construction and reused at every observation step, which requires the
// observation operator to be time- and state-independent.
package oi

import (
	"fmt"
	"math"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/climat"
	"github.com/milosgajdos/go-baseline/corrlen"
	bmat "github.com/milosgajdos/go-baseline/matrix"
	"github.com/milosgajdos/go-baseline/sigmoid"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// OI is the Optimal Interpolation method variant
type OI struct {
	// obs is the observation operator
	obs baseline.ObservationOperator
	// muC is the climatological mean
	muC *mat.VecDense
	// pc is the climatological covariance
	pc *mat.SymDense
	// kg is the climatological Kalman gain, fixed for the whole run
	kg *mat.Dense
	// p is the analysis covariance (I - KG*H)*PC; diagnostic only, it
	// never feeds back into the gain
	p *mat.Dense
	// l is the correlation length setting the sigmoid time constant
	l float64
	// sm is the current sigmoid fit of the covariance trace ratio
	sm sigmoid.Curve
}

// New creates an Optimal Interpolation variant from the observation
// operator, the observation noise model and the truth trajectory xx, one
// state sample per row.
// It fails with error if either of the following conditions is met:
//   - the operator is not time-independent: linearizing at a non-finite
//     placeholder state yields a non-finite entry
//   - the climatology cannot be estimated from xx
//   - the sigmoid cannot be anchored at the initial trace ratio
func New(obs baseline.ObservationOperator, rn baseline.Noise, xx *mat.Dense) (*OI, error) {
	_, m := xx.Dims()

	// for speed only a time-independent operator is supported: its
	// Jacobian must survive evaluation at a non-finite placeholder
	nan := math.NaN()
	placeholder := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		placeholder.SetVec(i, nan)
	}

	h, err := obs.Linearize(placeholder, nan)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", baseline.ErrUnsupportedOperator, err)
	}

	rh, ch := h.Dims()
	if ch != m {
		return nil, fmt.Errorf("%w: jacobian dimensions [%d x %d]", baseline.ErrUnsupportedOperator, rh, ch)
	}
	for i := 0; i < rh; i++ {
		for j := 0; j < ch; j++ {
			if math.IsNaN(h.At(i, j)) || math.IsInf(h.At(i, j), 0) {
				return nil, fmt.Errorf("%w: operator is not time-independent", baseline.ErrUnsupportedOperator)
			}
		}
	}

	muC, pc, err := climat.Estimate(xx)
	if err != nil {
		return nil, err
	}

	// climatological Kalman gain KG = PC*H' / (H*PC*H' + R)
	pxy := &mat.Dense{}
	pxy.Mul(pc, h.T())

	pyy := &mat.Dense{}
	pyy.Mul(h, pxy)
	pyy.Add(pyy, rn.Cov())

	kg, err := bmat.SolveRight(pxy, pyy)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Kalman gain: %v", err)
	}

	// analysis covariance P = (I - KG*H)*PC; used for diagnostics only,
	// never to change the gain
	eye, err := matrix.NewDenseValIdentity(m, 1.0)
	if err != nil {
		return nil, err
	}

	kh := &mat.Dense{}
	kh.Mul(kg, h)
	kh.Sub(eye, kh)

	p := &mat.Dense{}
	p.Mul(kh, pc)

	ac, err := climat.Anomalies(xx)
	if err != nil {
		return nil, err
	}
	l := corrlen.Estimate(corrlen.Ravel(ac))

	sm, err := sigmoid.Fit(mat.Trace(p)/(2*mat.Trace(pc)), l, 0)
	if err != nil {
		return nil, err
	}

	return &OI{
		obs: obs,
		muC: muC,
		pc:  pc,
		kg:  kg,
		p:   p,
		l:   l,
		sm:  sm,
	}, nil
}

// InitialEstimate returns the climatological mean and covariance.
func (o *OI) InitialEstimate() (mat.Vector, mat.Symmetric) {
	return o.mean(), o.climCov()
}

// Forecast propagates the mean through the dynamical model over the
// elapsed sub-interval.
func (o *OI) Forecast(prop baseline.Propagator, mu mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	return prop.Propagate(mu, tick.T-tick.DT, tick.DT)
}

// Analyzes returns true: every observation step corrects the mean.
func (o *OI) Analyzes() bool {
	return true
}

// ForecastEstimate returns the climatological mean and covariance: the
// static prior, not the propagated forecast.
func (o *OI) ForecastEstimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	return o.mean(), o.climCov()
}

// Analyze corrects the mean with observation y and refits the sigmoid
// anchored at the analysis step. The correction is applied around the
// climatological mean rather than the propagated forecast mean; the
// forecast mean is discarded here.
func (o *OI) Analyze(mu, y mat.Vector, tick baseline.Tick) (mat.Vector, error) {
	yC, err := o.obs.Observe(o.mean(), tick.T)
	if err != nil {
		return nil, fmt.Errorf("failed to observe climatological mean: %v", err)
	}

	inn := &mat.VecDense{}
	inn.SubVec(y, yC)

	corr := &mat.Dense{}
	corr.Mul(o.kg, inn)

	next := &mat.VecDense{}
	next.CloneFromVec(o.muC)
	next.AddVec(next, corr.ColView(0))

	sm, err := sigmoid.Fit(mat.Trace(o.p)/mat.Trace(o.pc), o.l, tick.K)
	if err != nil {
		return nil, err
	}
	o.sm = sm

	return next, nil
}

// Estimate returns the mean and the interpolated diagnostic covariance
// 2*PC*S(k) at step k.
func (o *OI) Estimate(mu mat.Vector, k int) (mat.Vector, mat.Symmetric) {
	cov := mat.NewSymDense(o.pc.SymmetricDim(), nil)
	cov.ScaleSym(2*o.sm(k), o.pc)

	return mu, cov
}

// Gain returns the climatological Kalman gain.
func (o *OI) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(o.kg)

	return gain
}

// CorrLength returns the estimated correlation length.
func (o *OI) CorrLength() float64 {
	return o.l
}

func (o *OI) mean() *mat.VecDense {
	mu := mat.NewVecDense(o.muC.Len(), nil)
	mu.CloneFromVec(o.muC)

	return mu
}

func (o *OI) climCov() mat.Symmetric {
	cov := mat.NewSymDense(o.pc.SymmetricDim(), nil)
	cov.CopySym(o.pc)

	return cov
}
