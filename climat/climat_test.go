package climat

import (
	"errors"
	"testing"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestEstimate(t *testing.T) {
	assert := assert.New(t)

	// 4 samples of a 2-D state
	xx := mat.NewDense(4, 2, []float64{
		1.0, 2.0,
		3.0, 4.0,
		5.0, 6.0,
		7.0, 8.0,
	})

	mean, cov, err := Estimate(xx)
	assert.NoError(err)
	assert.NotNil(mean)
	assert.NotNil(cov)

	assert.InDelta(4.0, mean.AtVec(0), 1e-12)
	assert.InDelta(5.0, mean.AtVec(1), 1e-12)

	// hand-computed Bessel covariance: both components have deviations
	// (-3,-1,1,3) so every entry is 20/3
	want := 20.0 / 3.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(want, cov.At(i, j), 1e-12)
		}
	}
}

func TestEstimateIdenticalSamples(t *testing.T) {
	assert := assert.New(t)

	xx := mat.NewDense(3, 2, []float64{
		1.5, -2.0,
		1.5, -2.0,
		1.5, -2.0,
	})

	mean, cov, err := Estimate(xx)
	assert.NoError(err)
	assert.InDelta(1.5, mean.AtVec(0), 1e-12)
	assert.InDelta(-2.0, mean.AtVec(1), 1e-12)

	// identical samples yield the zero matrix, not an error
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(0.0, cov.At(i, j))
		}
	}
}

func TestEstimateDegenerate(t *testing.T) {
	assert := assert.New(t)

	xx := mat.NewDense(1, 3, []float64{1.0, 2.0, 3.0})

	mean, cov, err := Estimate(xx)
	assert.Nil(mean)
	assert.Nil(cov)
	assert.Error(err)
	assert.True(errors.Is(err, baseline.ErrDegenerateInput))
}

func TestAnomalies(t *testing.T) {
	assert := assert.New(t)

	xx := mat.NewDense(2, 2, []float64{
		1.0, 10.0,
		3.0, 20.0,
	})

	ac, err := Anomalies(xx)
	assert.NoError(err)
	assert.NotNil(ac)

	want := mat.NewDense(2, 2, []float64{
		-1.0, -5.0,
		1.0, 5.0,
	})
	assert.True(mat.EqualApprox(want, ac, 1e-12))

	// too short
	ac, err = Anomalies(mat.NewDense(1, 2, nil))
	assert.Nil(ac)
	assert.True(errors.Is(err, baseline.ErrDegenerateInput))
}
