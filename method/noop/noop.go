// Package noop provides the no-op reference method: a structural
// placeholder that consumes no ticks and records nothing. It exists so
// callers can treat every reference method uniformly through
// baseline.Method.
package noop

// NoOp is the no-op reference method
type NoOp struct{}

// New creates a new NoOp method and returns it
func New() (*NoOp, error) {
	return &NoOp{}, nil
}

// Run does nothing and returns nil.
func (n *NoOp) Run() error {
	return nil
}
