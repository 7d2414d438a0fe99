package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestRowColSums(t *testing.T) {
	assert := assert.New(t)

	data := []float64{1.2, 3.4, 4.5, 6.7, 8.9, 10.0}
	rowSums := []float64{4.6, 11.2, 18.9}
	colSums := []float64{14.6, 20.1}
	delta := 0.001

	m := mat.NewDense(3, 2, data)
	assert.NotNil(m)

	// check rows
	resRows := RowSums(m)
	assert.NotNil(resRows)
	assert.InDeltaSlice(rowSums, resRows, delta)
	// check cols
	resCols := ColSums(m)
	assert.NotNil(resCols)
	assert.InDeltaSlice(colSums, resCols, delta)
	// should panic
	assert.Panics(func() { RowSums(nil) })
	assert.Panics(func() { ColSums(nil) })
}

func TestSymmetrize(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 2, []float64{1.0, 2.0, 4.0, 3.0})

	s := Symmetrize(m)
	assert.Equal(2, s.SymmetricDim())
	assert.Equal(1.0, s.At(0, 0))
	assert.Equal(3.0, s.At(1, 1))
	assert.Equal(3.0, s.At(0, 1))
	assert.Equal(3.0, s.At(1, 0))

	assert.Panics(func() { Symmetrize(mat.NewDense(2, 3, nil)) })
}

func TestSolveRight(t *testing.T) {
	assert := assert.New(t)

	a := mat.NewDense(2, 2, []float64{4.0, 1.0, 1.0, 3.0})
	b := mat.NewDense(2, 2, []float64{1.0, 0.0, 0.0, 1.0})

	x, err := SolveRight(b, a)
	assert.NoError(err)
	assert.NotNil(x)

	// X*a must recover b
	res := &mat.Dense{}
	res.Mul(x, a)
	assert.True(mat.EqualApprox(res, b, 1e-12))

	// mismatched dimensions
	bad := mat.NewDense(2, 3, nil)
	x, err = SolveRight(bad, a)
	assert.Nil(x)
	assert.Error(err)
}

func TestSolveRightNonSquare(t *testing.T) {
	assert := assert.New(t)

	// wide a: X [1 x 2] solving X*a = b in the least-squares sense
	a := mat.NewDense(2, 3, []float64{1.0, 0.0, 1.0, 0.0, 1.0, 1.0})
	b := mat.NewDense(1, 3, []float64{1.0, 2.0, 3.0})

	x, err := SolveRight(b, a)
	assert.NoError(err)
	assert.NotNil(x)

	rows, cols := x.Dims()
	assert.Equal(1, rows)
	assert.Equal(2, cols)

	res := &mat.Dense{}
	res.Mul(x, a)
	assert.True(mat.EqualApprox(res, b, 1e-12))

	// b whose columns match a's rows instead of a's columns must be
	// rejected up front, not blow up inside the solve
	bad := mat.NewDense(1, 2, []float64{1.0, 2.0})
	x, err = SolveRight(bad, a)
	assert.Nil(x)
	assert.Error(err)
}

func TestSolveRightSingular(t *testing.T) {
	assert := assert.New(t)

	// rank 1: exact inversion would fail, the pseudo-inverse must not
	a := mat.NewDense(2, 2, []float64{1.0, 1.0, 1.0, 1.0})
	b := mat.NewDense(1, 2, []float64{2.0, 2.0})

	x, err := SolveRight(b, a)
	assert.NoError(err)
	assert.NotNil(x)

	rows, cols := x.Dims()
	assert.Equal(1, rows)
	assert.Equal(2, cols)
	for i := 0; i < cols; i++ {
		assert.False(math.IsNaN(x.At(0, i)))
		assert.False(math.IsInf(x.At(0, i), 0))
	}

	// least-squares solution of X*[[1,1],[1,1]] = [2,2] is [1,1]
	assert.InDelta(1.0, x.At(0, 0), 1e-12)
	assert.InDelta(1.0, x.At(0, 1), 1e-12)

	// zero matrix has rank 0: solution is the zero matrix
	zero := mat.NewDense(2, 2, nil)
	x, err = SolveRight(b, zero)
	assert.NoError(err)
	assert.True(mat.EqualApprox(x, mat.NewDense(1, 2, nil), 1e-12))
}
