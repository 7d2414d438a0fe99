package method

import (
	"fmt"

	baseline "github.com/milosgajdos/go-baseline"
	"gonum.org/v1/gonum/mat"
)

// Cycle drives one assimilation run: a strict causal chain of
// forecast, optional analysis and diagnostic assessment per tick.
// It owns the running estimate for the duration of the run; nothing it
// holds is safe to share across concurrent runs.
type Cycle struct {
	// prop is the external dynamical model
	prop baseline.Propagator
	// ticker enumerates the simulation instants
	ticker baseline.Ticker
	// sink receives diagnostic snapshots
	sink baseline.Assessor
	// yy is the observation sequence indexed by observation index
	yy []mat.Vector
	// v supplies the method specific behaviour
	v Variant
}

// New creates a new assimilation cycle and returns it.
// It returns error if either of the collaborators is nil.
func New(prop baseline.Propagator, ticker baseline.Ticker, sink baseline.Assessor, yy []mat.Vector, v Variant) (*Cycle, error) {
	if prop == nil || ticker == nil || sink == nil || v == nil {
		return nil, fmt.Errorf("invalid cycle collaborators: prop %v, ticker %v, sink %v, variant %v", prop, ticker, sink, v)
	}

	return &Cycle{
		prop:   prop,
		ticker: ticker,
		sink:   sink,
		yy:     yy,
		v:      v,
	}, nil
}

// Run consumes the whole tick sequence, assessing the estimate once before
// stepping begins and once per tick, with an extra pre-analysis assessment
// at observation steps. It returns on the first failure with no partial
// stepping left running; the ticker cannot be resumed.
func (c *Cycle) Run() error {
	mu0, cov0 := c.v.InitialEstimate()
	c.sink.Assess(0, -1, baseline.PhaseForecastOnly, mu0, cov0)

	mu := mu0
	for {
		tick, ok := c.ticker.Next()
		if !ok {
			return nil
		}

		fmu, err := c.v.Forecast(c.prop, mu, tick)
		if err != nil {
			return fmt.Errorf("forecast failed at step %d: %v", tick.K, err)
		}
		mu = fmu

		if tick.KObs >= 0 && c.v.Analyzes() {
			pmu, pcov := c.v.ForecastEstimate(mu, tick.K)
			c.sink.Assess(tick.K, tick.KObs, baseline.PhaseForecast, pmu, pcov)

			if tick.KObs >= len(c.yy) {
				return fmt.Errorf("missing observation %d at step %d", tick.KObs, tick.K)
			}

			amu, err := c.v.Analyze(mu, c.yy[tick.KObs], tick)
			if err != nil {
				return fmt.Errorf("analysis failed at step %d: %w", tick.K, err)
			}
			mu = amu
		}

		phase := baseline.PhaseForecastOnly
		if tick.KObs >= 0 {
			phase = baseline.PhaseForecastAnalysis
		}

		emu, ecov := c.v.Estimate(mu, tick.K)
		c.sink.Assess(tick.K, tick.KObs, phase, emu, ecov)
	}
}
