package sim

import (
	"fmt"

	baseline "github.com/milosgajdos/go-baseline"
)

// Chrono is a fixed-step baseline.Ticker over a finite simulation window.
// Steps are indexed 1..K, each of size dt, with an observation at every
// dkObs-th step. Observation indices are dense from 0, one per observation
// time. Chrono is not restartable.
type Chrono struct {
	// k is the last step handed out
	k int
	// kMax is the number of steps in the window
	kMax int
	// dkObs is the step period of observations
	dkObs int
	// dt is the step size
	dt float64
}

// NewChrono creates a ticker over kMax steps of size dt with an observation
// every dkObs-th step.
// It fails with error if kMax, dkObs or dt is not positive.
func NewChrono(kMax, dkObs int, dt float64) (*Chrono, error) {
	if kMax <= 0 || dkObs <= 0 {
		return nil, fmt.Errorf("invalid chronology: kMax %d, dkObs %d", kMax, dkObs)
	}

	if dt <= 0 {
		return nil, fmt.Errorf("invalid step size: %v", dt)
	}

	return &Chrono{
		kMax:  kMax,
		dkObs: dkObs,
		dt:    dt,
	}, nil
}

// Next returns the next tick; ok is false once the window is exhausted.
func (c *Chrono) Next() (baseline.Tick, bool) {
	if c.k >= c.kMax {
		return baseline.Tick{}, false
	}
	c.k++

	kObs := -1
	if c.k%c.dkObs == 0 {
		kObs = c.k/c.dkObs - 1
	}

	return baseline.Tick{
		K:    c.k,
		KObs: kObs,
		T:    float64(c.k) * c.dt,
		DT:   c.dt,
	}, true
}

// NumObs returns the number of observation times in the window.
func (c *Chrono) NumObs() int {
	return c.kMax / c.dkObs
}
