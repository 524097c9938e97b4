package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// MultivariateNormal is a Gaussian sampling target backed by gonum's distmv.
type MultivariateNormal struct {
	dist *distmv.Normal
}

// NewMultivariateNormal creates a Gaussian target with the given mean vector
// and covariance matrix.
func NewMultivariateNormal(mean []float64, cov *mat.SymDense) (*MultivariateNormal, error) {
	if len(mean) < 1 {
		return nil, errors.Errorf("Mean vector is empty")
	}
	if cov.SymmetricDim() != len(mean) {
		return nil, errors.Errorf("Mean has dim %d but covariance is %dx%d", len(mean), cov.SymmetricDim(), cov.SymmetricDim())
	}

	d, ok := distmv.NewNormal(mean, cov, nil)
	if !ok {
		return nil, errors.Errorf("Covariance matrix is not positive definite")
	}

	return &MultivariateNormal{dist: d}, nil
}

// NewStandardNormal creates a Gaussian target with zero mean and identity
// covariance in the given dimension.
func NewStandardNormal(dim int) (*MultivariateNormal, error) {
	if dim < 1 {
		return nil, errors.Errorf("Invalid dimension %d", dim)
	}

	cov := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		cov.SetSym(i, i, 1.0)
	}

	return NewMultivariateNormal(make([]float64, dim), cov)
}

// Dim returns the parameter dimensionality of the target
func (m *MultivariateNormal) Dim() int {
	return m.dist.Dim()
}

// LogDensity returns the Gaussian log-density at x
func (m *MultivariateNormal) LogDensity(x []float64) (float64, error) {
	if len(x) != m.dist.Dim() {
		return 0, errors.Errorf("Point has dim %d, target expects %d", len(x), m.dist.Dim())
	}
	return m.dist.LogProb(x), nil
}

// Rosenbrock is the classic 2-D banana-shaped test density,
// log p(x) = -(scale*(x1 - x0^2)^2 + (1 - x0)^2) / temper. It is unimodal
// with its mode at (1, 1) but badly anisotropic, which is exactly the shape
// the stretch move handles without tuning.
type Rosenbrock struct {
	Scale  float64
	Temper float64
}

// NewRosenbrock returns the standard tempered Rosenbrock target
func NewRosenbrock() *Rosenbrock {
	return &Rosenbrock{Scale: 100.0, Temper: 20.0}
}

// LogDensity returns the Rosenbrock log-density at x
func (r *Rosenbrock) LogDensity(x []float64) (float64, error) {
	if len(x) != 2 {
		return 0, errors.Errorf("Point has dim %d, Rosenbrock expects 2", len(x))
	}

	d1 := x[1] - x[0]*x[0]
	d2 := 1.0 - x[0]
	return -(r.Scale*d1*d1 + d2*d2) / r.Temper, nil
}

// BoundedBox restricts an inner target to an axis-aligned box: outside the
// box the log-density is negative infinity, inside it defers to the inner
// target unchanged.
type BoundedBox struct {
	Inner TargetDensity
	Lo    []float64
	Hi    []float64
}

// NewBoundedBox wraps inner with the box [lo, hi] in every coordinate.
func NewBoundedBox(inner TargetDensity, lo []float64, hi []float64) (*BoundedBox, error) {
	if inner == nil {
		return nil, errors.Errorf("No inner target supplied")
	}
	if len(lo) != len(hi) || len(lo) < 1 {
		return nil, errors.Errorf("Invalid bounds: lo has dim %d, hi has dim %d", len(lo), len(hi))
	}
	for i, l := range lo {
		if l >= hi[i] {
			return nil, errors.Errorf("Bound %d is empty: [%v, %v]", i, l, hi[i])
		}
	}

	return &BoundedBox{Inner: inner, Lo: lo, Hi: hi}, nil
}

// LogDensity returns the inner log-density inside the box and -Inf outside
func (b *BoundedBox) LogDensity(x []float64) (float64, error) {
	if len(x) != len(b.Lo) {
		return 0, errors.Errorf("Point has dim %d, box expects %d", len(x), len(b.Lo))
	}

	for i, v := range x {
		if v < b.Lo[i] || v > b.Hi[i] {
			return math.Inf(-1), nil
		}
	}

	return b.Inner.LogDensity(x)
}
