package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Linear is a linear, discrete-time dynamical system with a linear
// observation operator:
//
//	x[k+1] = A*x[k]
//	y[k] = C*x[k]
//
// It implements baseline.Propagator and baseline.ObservationOperator.
// One Propagate call advances the state by one model step regardless of
// the elapsed interval, so the tick size must equal the model step.
// The operator is linear, state- and time-independent: Linearize returns
// C for any state and time, including non-finite placeholders.
type Linear struct {
	// A is state propagation matrix
	A *mat.Dense
	// C is observation matrix
	C *mat.Dense
}

// NewLinear creates a linear model with state propagation matrix A and
// observation matrix C.
// It fails with error if A is not square or the dimensions of A and C do
// not agree.
func NewLinear(A, C *mat.Dense) (*Linear, error) {
	ra, ca := A.Dims()
	if ra != ca {
		return nil, fmt.Errorf("invalid state matrix dimensions: [%d x %d]", ra, ca)
	}

	rc, cc := C.Dims()
	if cc != ca || rc > ca {
		return nil, fmt.Errorf("invalid observation matrix dimensions: [%d x %d]", rc, cc)
	}

	return &Linear{
		A: mat.DenseCopyOf(A),
		C: mat.DenseCopyOf(C),
	}, nil
}

// Dims returns the state and observation dimensions of the model
func (l *Linear) Dims() (nx, ny int) {
	nx, _ = l.A.Dims()
	ny, _ = l.C.Dims()

	return nx, ny
}

// Propagate advances mu by one model step and returns the new mean.
// It fails with error if mu does not match the state dimension.
func (l *Linear) Propagate(mu mat.Vector, t, dt float64) (mat.Vector, error) {
	nx, _ := l.A.Dims()
	if mu.Len() != nx {
		return nil, fmt.Errorf("invalid state vector length: %d", mu.Len())
	}

	out := new(mat.Dense)
	out.Mul(l.A, mu)

	return out.ColView(0), nil
}

// Observe evaluates the observation operator at state x.
// It fails with error if x does not match the state dimension.
func (l *Linear) Observe(x mat.Vector, t float64) (mat.Vector, error) {
	_, cc := l.C.Dims()
	if x.Len() != cc {
		return nil, fmt.Errorf("invalid state vector length: %d", x.Len())
	}

	out := new(mat.Dense)
	out.Mul(l.C, x)

	return out.ColView(0), nil
}

// Linearize returns the observation matrix C: the operator Jacobian is
// the same for every state and time.
func (l *Linear) Linearize(x mat.Vector, t float64) (mat.Matrix, error) {
	return mat.DenseCopyOf(l.C), nil
}
