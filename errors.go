package baseline

import "errors"

var (
	// ErrUnsupportedOperator is returned when the observation operator is not
	// time-independent and the method requires it to be.
	ErrUnsupportedOperator = errors.New("unsupported observation operator")

	// ErrDegenerateInput is returned when supplied statistics cannot be
	// estimated: a truth trajectory with fewer than 2 samples, or a sigmoid
	// anchor outside the open interval (0,1).
	ErrDegenerateInput = errors.New("degenerate input")
)
