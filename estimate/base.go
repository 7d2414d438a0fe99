package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Base is a state estimate snapshot: a mean vector and its covariance.
// It copies its inputs so later mutation of the running estimate cannot
// leak into recorded diagnostics.
type Base struct {
	// mu is the estimate mean
	mu *mat.VecDense
	// cov is the estimate covariance
	cov *mat.SymDense
}

// NewBase returns a base estimate with mean mu and zero covariance
func NewBase(mu mat.Vector) (*Base, error) {
	m := &mat.VecDense{}
	if mu != nil {
		m.CloneFromVec(mu)
	}

	c := mat.NewSymDense(m.Len(), nil)

	return &Base{
		mu:  m,
		cov: c,
	}, nil
}

// NewBaseWithCov returns a base estimate with mean mu and covariance cov.
// It fails with error if their dimensions do not agree.
func NewBaseWithCov(mu mat.Vector, cov mat.Symmetric) (*Base, error) {
	rm, _ := mu.Dims()
	rc := cov.SymmetricDim()

	if rm != rc {
		return nil, fmt.Errorf("invalid dimensions: mu %d, cov %d x %d", rm, rc, rc)
	}

	m := &mat.VecDense{}
	m.CloneFromVec(mu)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Base{
		mu:  m,
		cov: c,
	}, nil
}

// Val returns the estimate mean
func (b *Base) Val() mat.Vector {
	m := &mat.VecDense{}
	m.CloneFromVec(b.mu)

	return m
}

// Cov returns the estimate covariance
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Estimate{\nMu=%v\nCov=%v\n}", mat.Formatted(b.mu), mat.Formatted(b.cov, mat.Prefix("    "), mat.Squeeze()))
}
