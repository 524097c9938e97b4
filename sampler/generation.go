package sampler

import (
	"github.com/pkg/errors"

	"github.com/CraigKelly/ensample/model"
)

// A Generation is the complete ordered set of walker states at one
// iteration. A generation is read-only once built: Advance reads one
// generation and produces a fresh one, never updating in place.
type Generation []*Walker

// Dim returns the shared parameter dimensionality (0 for an empty generation)
func (g Generation) Dim() int {
	if len(g) < 1 {
		return 0
	}
	return g[0].Dim()
}

// Check verifies the ensemble invariants: at least 2 walkers, all with the
// same parameter dimensionality.
func (g Generation) Check() error {
	if len(g) < 2 {
		return errors.Wrapf(ErrInsufficientWalkers, "Generation has %d walker(s)", len(g))
	}

	dim := g[0].Dim()
	for i, w := range g {
		if w.Dim() != dim {
			return errors.Wrapf(ErrDimensionMismatch, "Walker %d has dim %d, ensemble has dim %d", i, w.Dim(), dim)
		}
	}

	return nil
}

// Points returns a copy of every walker's parameter vector, in walker order.
func (g Generation) Points() [][]float64 {
	pts := make([][]float64, len(g))
	for i, w := range g {
		p := make([]float64, len(w.Point))
		copy(p, w.Point)
		pts[i] = p
	}
	return pts
}

// A PointSource draws independent points from some initial distribution.
// The gonum distmv distributions (Uniform, Normal, ...) all satisfy this.
type PointSource interface {
	Rand(x []float64) []float64
}

// NewGeneration builds the first generation from explicit starting points,
// evaluating the target once per point. All points must share one
// dimensionality.
func NewGeneration(target model.TargetDensity, points [][]float64) (Generation, error) {
	if len(points) < 1 {
		return nil, errors.Wrap(ErrInvalidStart, "No starting points supplied")
	}
	if len(points) < 2 {
		return nil, errors.Wrapf(ErrInsufficientWalkers, "Only %d starting point supplied", len(points))
	}

	dim := len(points[0])
	gen := make(Generation, len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, errors.Wrapf(ErrInvalidStart, "Starting point %d has dim %d, expected %d", i, len(p), dim)
		}

		w, err := NewWalker(target, p)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not create walker %d", i)
		}
		gen[i] = w
	}

	return gen, gen.Check()
}

// NewGenerationFrom builds the first generation by drawing nWalkers
// independent points of the given dimension from src. Each draw is
// independent - no cross-walker coupling happens before the first Advance.
func NewGenerationFrom(target model.TargetDensity, src PointSource, nWalkers int, dim int) (Generation, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidStart, "No point source supplied")
	}
	if nWalkers < 2 {
		return nil, errors.Wrapf(ErrInsufficientWalkers, "%d walker(s) requested", nWalkers)
	}
	if dim < 1 {
		return nil, errors.Wrapf(ErrInvalidStart, "Invalid dimension %d", dim)
	}

	gen := make(Generation, nWalkers)
	for i := range gen {
		p := src.Rand(make([]float64, dim))
		if len(p) != dim {
			return nil, errors.Wrapf(ErrInvalidStart, "Point source returned dim %d, expected %d", len(p), dim)
		}

		w, err := NewWalker(target, p)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not create walker %d", i)
		}
		gen[i] = w
	}

	return gen, gen.Check()
}
