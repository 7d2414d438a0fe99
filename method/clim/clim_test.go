package clim

import (
	"errors"
	"testing"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/climat"
	"github.com/milosgajdos/go-baseline/method"
	"github.com/milosgajdos/go-baseline/rnd"
	"github.com/milosgajdos/go-baseline/sim"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	xx := mat.NewDense(4, 2, []float64{
		1.0, 2.0,
		3.0, 4.0,
		5.0, 6.0,
		7.0, 8.0,
	})

	c, err := New(xx)
	assert.NotNil(c)
	assert.NoError(err)

	// single-sample trajectory has no climatology
	c, err = New(mat.NewDense(1, 2, nil))
	assert.Nil(c)
	assert.True(errors.Is(err, baseline.ErrDegenerateInput))
}

func TestRunPinsClimatology(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0})
	xx, err := rnd.Trajectory(cov, 50)
	assert.NoError(err)

	// the reference the run must reproduce at every tick
	muC, pc, err := climat.Estimate(xx)
	assert.NoError(err)

	v, err := New(xx)
	assert.NoError(err)

	A := mat.NewDense(2, 2, []float64{1.0, 1.0, 0.0, 1.0})
	C := mat.NewDense(2, 2, []float64{1.0, 0.0, 0.0, 1.0})
	model, err := sim.NewLinear(A, C)
	assert.NoError(err)

	ticker, err := sim.NewChrono(9, 3, 1.0)
	assert.NoError(err)

	rec := sim.NewRecorder()
	c, err := method.New(model, ticker, rec, nil, v)
	assert.NoError(err)
	assert.NoError(c.Run())

	recs := rec.Assessments()
	// no analysis: one assessment per tick plus the initial one
	assert.Equal(10, len(recs))

	for _, r := range recs {
		val := r.Estimate.Val()
		for i := 0; i < muC.Len(); i++ {
			assert.Equal(muC.AtVec(i), val.AtVec(i))
		}

		// bit-identical to the independently computed climatology
		got := r.Estimate.Cov()
		for i := 0; i < pc.SymmetricDim(); i++ {
			for j := 0; j < pc.SymmetricDim(); j++ {
				assert.Equal(pc.At(i, j), got.At(i, j))
			}
		}
	}

	// observation steps keep the combined tag even without analysis
	assert.Equal(baseline.PhaseForecastAnalysis, recs[3].Phase)
	assert.Equal(0, recs[3].KObs)
	assert.Equal(baseline.PhaseForecastOnly, recs[1].Phase)
}

func TestAccessors(t *testing.T) {
	assert := assert.New(t)

	xx := mat.NewDense(3, 2, []float64{
		0.0, 0.0,
		1.0, 1.0,
		2.0, 2.0,
	})

	c, err := New(xx)
	assert.NoError(err)

	mean := c.Mean()
	assert.InDelta(1.0, mean.AtVec(0), 1e-12)
	assert.InDelta(1.0, mean.AtVec(1), 1e-12)

	cov := c.Cov()
	assert.Equal(2, cov.SymmetricDim())

	// variant never analyzes
	assert.False(c.Analyzes())
}
