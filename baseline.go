package baseline

import "gonum.org/v1/gonum/mat"

// Method is a fully configured assimilation run.
type Method interface {
	// Run consumes the whole tick sequence and returns when it is exhausted
	Run() error
}

// Propagator propagates the state estimate mean through the dynamical model
type Propagator interface {
	// Propagate propagates mu from time t over the elapsed interval dt
	Propagate(mu mat.Vector, t, dt float64) (mat.Vector, error)
}

// ObservationOperator maps model state to observation space
type ObservationOperator interface {
	// Observe evaluates the operator at state x and time t
	Observe(x mat.Vector, t float64) (mat.Vector, error)
	// Linearize returns the Jacobian of the operator at state x and time t
	Linearize(x mat.Vector, t float64) (mat.Matrix, error)
}

// InitCond is the initial distribution of the state estimate
type InitCond interface {
	// State returns initial mean
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Noise is observation noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}

// Tick is one instant of the simulation window.
type Tick struct {
	// K is the step index
	K int
	// KObs is the observation index, -1 when the step has no observation
	KObs int
	// T is absolute time at the end of the step
	T float64
	// DT is the elapsed step size
	DT float64
}

// Ticker enumerates the simulation instants: a lazy, finite,
// non-restartable sequence with exactly one KObs per observation time.
type Ticker interface {
	// Next returns the next tick; ok is false once the sequence is exhausted
	Next() (t Tick, ok bool)
}

// Phase tags a diagnostic assessment within one step.
type Phase string

const (
	// PhaseForecast is the pre-analysis assessment at an observation step
	PhaseForecast Phase = "f"
	// PhaseForecastAnalysis is the final assessment at an observation step
	PhaseForecastAnalysis Phase = "fau"
	// PhaseForecastOnly is the assessment at a step with no observation
	PhaseForecastOnly Phase = "u"
)

// Assessor is a write-only sink for diagnostic snapshots of the estimate.
// It is purely an observation side channel: nothing it does feeds back
// into the assimilation.
type Assessor interface {
	// Assess records the estimate at step k; kObs is -1 outside observation steps
	Assess(k, kObs int, phase Phase, mu mat.Vector, cov mat.Symmetric)
}
