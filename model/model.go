package model

// A TargetDensity is an unnormalized log-density over a continuous parameter
// space of fixed dimensionality. Implementations return negative infinity
// for an infeasible point - that is a normal value, not an error. A non-nil
// error means the evaluation itself failed; the sampler treats that as fatal
// for the iteration in progress and does not retry.
//
// Implementations must be pure: no side effects, and safe for concurrent
// calls, since the ensemble evaluates proposals for all walkers in parallel.
type TargetDensity interface {
	LogDensity(x []float64) (float64, error)
}

// LogDensityFunc adapts a plain function to the TargetDensity interface.
type LogDensityFunc func(x []float64) (float64, error)

// LogDensity calls f(x)
func (f LogDensityFunc) LogDensity(x []float64) (float64, error) {
	return f(x)
}
