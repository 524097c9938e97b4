package sampler

import (
	"github.com/pkg/errors"

	"github.com/CraigKelly/ensample/model"
)

// A Walker is one member of the ensemble: a point in parameter space plus
// the cached target log-density at that point. Walkers are never mutated
// once created - a rejected proposal keeps the previous Walker (the same
// pointer) in the next generation, and an accepted proposal creates a new
// one. The cached LogDensity is therefore never stale.
type Walker struct {
	Point      []float64
	LogDensity float64
}

// NewWalker evaluates the target at the given point and wraps the result.
// The point is copied so the caller can reuse its buffer.
func NewWalker(target model.TargetDensity, point []float64) (*Walker, error) {
	if len(point) < 1 {
		return nil, errors.Errorf("Walker point is empty")
	}

	lp, err := target.LogDensity(point)
	if err != nil {
		return nil, errors.Wrap(err, "Target density evaluation failed")
	}

	p := make([]float64, len(point))
	copy(p, point)

	return &Walker{Point: p, LogDensity: lp}, nil
}

// Dim returns the walker's parameter dimensionality
func (w *Walker) Dim() int {
	return len(w.Point)
}
