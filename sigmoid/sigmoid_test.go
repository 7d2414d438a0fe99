package sigmoid

import (
	"errors"
	"math"
	"testing"

	baseline "github.com/milosgajdos/go-baseline"
	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		sb float64
		l  float64
		kb int
	}{
		{sb: 0.5, l: 1.0, kb: 0},
		{sb: 0.1, l: 5.0, kb: 10},
		{sb: 0.9, l: 0.5, kb: -3},
		{sb: 0.25, l: 100.0, kb: 42},
	} {
		s, err := Fit(test.sb, test.l, test.kb)
		assert.NoError(err)
		assert.NotNil(s)

		// anchored at (kb, sb)
		assert.InDelta(test.sb, s(test.kb), 1e-9)

		// monotonically increasing
		prev := s(test.kb - 50)
		for k := test.kb - 49; k < test.kb+50; k++ {
			cur := s(k)
			assert.True(cur > prev)
			prev = cur
		}

		// asymptotic limits
		assert.InDelta(0.0, s(test.kb-100000), 1e-6)
		assert.InDelta(1.0, s(test.kb+100000), 1e-6)
	}
}

func TestFitInvalidAnchor(t *testing.T) {
	assert := assert.New(t)

	for _, sb := range []float64{-0.2, 1.5, math.NaN()} {
		s, err := Fit(sb, 1.0, 0)
		assert.Nil(s)
		assert.Error(err)
		assert.True(errors.Is(err, baseline.ErrDegenerateInput))
	}

	// non-positive length
	s, err := Fit(0.5, 0.0, 0)
	assert.Nil(s)
	assert.True(errors.Is(err, baseline.ErrDegenerateInput))
}

func TestFitClampsNearBoundary(t *testing.T) {
	assert := assert.New(t)

	// anchors at the boundary or a rounding error beyond it get clamped
	// to the margin instead of erroring: a trace ratio of a covariance
	// that cancels to numerical zero lands here
	for _, sb := range []float64{0.0, -5e-17, 1e-12, 5e-17, 1.0, 1 - 1e-12, 1 + 5e-17} {
		s, err := Fit(sb, 1.0, 0)
		assert.NoError(err)
		assert.NotNil(s)
		assert.True(s(0) > 0 && s(0) < 1)
	}
}

func TestFitFlatWhenLengthLarge(t *testing.T) {
	assert := assert.New(t)

	// a huge correlation length gives an almost flat curve around the anchor
	s, err := Fit(0.3, 1e9, 0)
	assert.NoError(err)
	assert.InDelta(0.3, s(1000), 1e-6)
	assert.InDelta(0.3, s(-1000), 1e-6)
}
