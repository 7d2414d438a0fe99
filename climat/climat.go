// Package climat estimates climatological statistics of a truth trajectory:
// the sample mean and covariance used as a static prior by the reference
// assimilation methods.
package climat

import (
	"fmt"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Estimate returns the mean vector and the sample covariance matrix of the
// truth trajectory xx, one state sample per row. The covariance is estimated
// with Bessel's correction (divided by N-1). A trajectory of identical
// samples yields the zero matrix, not an error.
// It fails with error if xx holds fewer than 2 samples.
func Estimate(xx *mat.Dense) (*mat.VecDense, *mat.SymDense, error) {
	n, m := xx.Dims()
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: trajectory with %d samples", baseline.ErrDegenerateInput, n)
	}

	sums := matrix.ColSums(xx)
	mean := mat.NewVecDense(m, sums)
	mean.ScaleVec(1/float64(n), mean)

	cov := mat.NewSymDense(m, nil)
	stat.CovarianceMatrix(cov, xx, nil)

	return mean, cov, nil
}

// Anomalies returns the centered trajectory: each row of xx minus the
// trajectory mean.
// It fails with error if xx holds fewer than 2 samples.
func Anomalies(xx *mat.Dense) (*mat.Dense, error) {
	mean, _, err := Estimate(xx)
	if err != nil {
		return nil, err
	}

	n, m := xx.Dims()
	ac := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			ac.Set(i, j, xx.At(i, j)-mean.AtVec(j))
		}
	}

	return ac, nil
}
