package sim

import (
	baseline "github.com/milosgajdos/go-baseline"
	"github.com/milosgajdos/go-baseline/estimate"
	"gonum.org/v1/gonum/mat"
)

// Assessment is one recorded diagnostic snapshot.
type Assessment struct {
	// K is the step index
	K int
	// KObs is the observation index, -1 outside observation steps
	KObs int
	// Phase tags the snapshot within the step
	Phase baseline.Phase
	// Estimate is the snapshot of the running estimate
	Estimate *estimate.Base
}

// Recorder is an in-memory baseline.Assessor keeping every snapshot in
// arrival order.
type Recorder struct {
	assessments []Assessment
}

// NewRecorder creates a new empty Recorder and returns it
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Assess records the estimate snapshot at step k.
func (r *Recorder) Assess(k, kObs int, phase baseline.Phase, mu mat.Vector, cov mat.Symmetric) {
	est, err := estimate.NewBaseWithCov(mu, cov)
	if err != nil {
		// a sink cannot report back; keep the ordering visible instead
		est, _ = estimate.NewBase(mu)
	}

	r.assessments = append(r.assessments, Assessment{
		K:        k,
		KObs:     kObs,
		Phase:    phase,
		Estimate: est,
	})
}

// Assessments returns the recorded snapshots in arrival order.
func (r *Recorder) Assessments() []Assessment {
	out := make([]Assessment, len(r.assessments))
	copy(out, r.assessments)

	return out
}

// Last returns the most recent snapshot, or nil when nothing was recorded.
func (r *Recorder) Last() *Assessment {
	if len(r.assessments) == 0 {
		return nil
	}

	a := r.assessments[len(r.assessments)-1]
	return &a
}
