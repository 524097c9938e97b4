package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Moments holds the empirical mean vector and covariance matrix for a pool
// of sampled points. This is the diagnostic surface we report after a run:
// for a well-mixed chain on a known target these should approach the
// target's true moments.
type Moments struct {
	Mean []float64
	Cov  *mat.SymDense
	N    int
}

// NewMoments calculates moments over the given points. All points must share
// one dimensionality and at least 2 points are required.
func NewMoments(points [][]float64) (*Moments, error) {
	if len(points) < 2 {
		return nil, errors.Errorf("Need at least 2 points for moments, have %d", len(points))
	}

	dim := len(points[0])
	if dim < 1 {
		return nil, errors.Errorf("Points have dimension 0")
	}

	data := mat.NewDense(len(points), dim, nil)
	for i, p := range points {
		if len(p) != dim {
			return nil, errors.Errorf("Point %d has dim %d, expected %d", i, len(p), dim)
		}
		data.SetRow(i, p)
	}

	mean := make([]float64, dim)
	col := make([]float64, len(points))
	for j := 0; j < dim; j++ {
		mat.Col(col, j, data)
		mean[j] = stat.Mean(col, nil)
	}

	cov := mat.NewSymDense(dim, nil)
	stat.CovarianceMatrix(cov, data, nil)

	return &Moments{
		Mean: mean,
		Cov:  cov,
		N:    len(points),
	}, nil
}

// MaxAbsMeanDiff returns the largest absolute per-coordinate difference
// between the empirical mean and the given target mean.
func (m *Moments) MaxAbsMeanDiff(target []float64) (float64, error) {
	if len(target) != len(m.Mean) {
		return 0, errors.Errorf("Target mean has dim %d, moments have %d", len(target), len(m.Mean))
	}
	return floats.Distance(m.Mean, target, math.Inf(1)), nil
}

// MaxAbsCovDiff returns the largest absolute entry-wise difference between
// the empirical covariance and the given target covariance.
func (m *Moments) MaxAbsCovDiff(target *mat.SymDense) (float64, error) {
	dim := m.Cov.SymmetricDim()
	if target.SymmetricDim() != dim {
		return 0, errors.Errorf("Target covariance is %dx%d, moments have %dx%d", target.SymmetricDim(), target.SymmetricDim(), dim, dim)
	}

	maxDiff := 0.0
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			d := math.Abs(m.Cov.At(i, j) - target.At(i, j))
			if d > maxDiff {
				maxDiff = d
			}
		}
	}

	return maxDiff, nil
}
