package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewZero(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)

	e, err = NewZero(-10)
	assert.Nil(e)
	assert.Error(err)
}

func TestZeroMeanCov(t *testing.T) {
	assert := assert.New(t)

	size := 2
	mean := []float64{0, 0}
	cov := mat.NewSymDense(size, nil)

	e, err := NewZero(size)
	assert.NotNil(e)
	assert.NoError(err)

	eCov := e.Cov()
	assert.Equal(cov.SymmetricDim(), eCov.SymmetricDim())

	rows, cols := eCov.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if eCov.At(r, c) != cov.At(r, c) {
				t.Errorf("Incorrect covariance matrix returned")
			}
		}
	}

	eMean := e.Mean()
	assert.EqualValues(mean, eMean)
}

func TestZeroSample(t *testing.T) {
	assert := assert.New(t)

	size := 2
	e, err := NewZero(size)
	assert.NotNil(e)
	assert.NoError(err)

	sample := e.Sample()
	r, _ := sample.Dims()
	assert.Equal(size, r)
	assert.Equal(0.0, mat.Sum(sample))
}

func TestZeroReset(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)

	sample1 := e.Sample()

	e.Reset()

	sample2 := e.Sample()
	assert.Equal(sample1, sample2)
}

func TestZeroString(t *testing.T) {
	assert := assert.New(t)

	str := `Zero{
Mean=[0 0]
Cov=⎡0  0⎤
    ⎣0  0⎦
}`

	e, err := NewZero(2)
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal(str, e.String())
}
