package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// rcond is the singular value cutoff ratio for rank truncation
const rcond = 1e-15

// RowSums returns a slice containing m row sums.
// It panics if m is nil.
func RowSums(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	sum := make([]float64, rows)

	for i := 0; i < rows; i++ {
		sum[i] = floats.Sum(m.RawRowView(i))
	}

	return sum
}

// ColSums returns a slice containing m column sums.
// It panics if m is nil.
func ColSums(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	sum := make([]float64, cols)

	for i := 0; i < cols; i++ {
		sum[i] = mat.Sum(m.ColView(i))
	}

	return sum
}

// Symmetrize returns (m + m')/2 as a symmetric matrix. Covariance updates
// of the form (I - K*H)*B are symmetric algebraically but not numerically;
// this restores the invariant.
// It panics if m is not square.
func Symmetrize(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic(fmt.Sprintf("matrix: cannot symmetrize [%d x %d] matrix", r, c))
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}

	return s
}

// SolveRight solves X*a = b for X and returns it.
// It is the matrix right division b/a backed by an SVD least-squares solve
// with rank truncation, so a near-singular a yields the pseudo-inverse
// solution instead of an error.
// It fails with error if the dimensions of a and b do not agree or if the
// SVD factorization of a fails.
func SolveRight(b, a mat.Matrix) (*mat.Dense, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()

	// X*a = b needs X [rb x ra], so b's columns must match a's columns
	if cb != ca {
		return nil, fmt.Errorf("invalid dimensions: b [%d x %d], a [%d x %d]", rb, cb, ra, ca)
	}

	// X*a = b transposes to a'*X' = b' which SVD solves as least squares
	var svd mat.SVD
	if ok := svd.Factorize(a.T(), mat.SVDThin); !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	rank := svd.Rank(rcond)
	if rank == 0 {
		return mat.NewDense(rb, ra, nil), nil
	}

	xt := &mat.Dense{}
	svd.SolveTo(xt, b.T(), rank)

	x := &mat.Dense{}
	x.CloneFrom(xt.T())

	return x, nil
}
