// Package sigmoid fits a one-parameter logistic curve approximating the
// evolution of a covariance trace ratio between analysis steps.
package sigmoid

import (
	"fmt"
	"math"

	baseline "github.com/milosgajdos/go-baseline"
)

// eps is the clamping margin keeping the logit of the anchor finite
const eps = 1e-8

// Curve evaluates the fitted sigmoid at step k.
type Curve func(k int) float64

// Fit returns a sigmoid S(k) anchored so that S(kb) = sb, rising with a
// midpoint slope proportional to 1/l: S(k) = logistic(b + (k-kb)/l) with
// b = logit(sb). S tends to 0 as k decreases and to 1 as k grows.
// An anchor within eps of the interval [0,1] is clamped to the margin so
// its logit stays finite: trace-ratio anchors computed from near-exact
// covariance cancellation land at 0 or a hair below it and must not kill
// the run.
// It fails with error if sb lies further than eps outside [0,1] or if l
// is not positive.
func Fit(sb, l float64, kb int) (Curve, error) {
	if math.IsNaN(sb) || sb < -eps || sb > 1+eps {
		return nil, fmt.Errorf("%w: sigmoid anchor %v outside (0,1)", baseline.ErrDegenerateInput, sb)
	}

	if l <= 0 {
		return nil, fmt.Errorf("%w: correlation length %v", baseline.ErrDegenerateInput, l)
	}

	sb = math.Min(math.Max(sb, eps), 1-eps)

	a := 1 / l
	b := math.Log(sb / (1 - sb))

	return func(k int) float64 {
		return logistic(b + a*float64(k-kb))
	}, nil
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
