package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestStandardNormal(t *testing.T) {
	assert := assert.New(t)

	_, err := NewStandardNormal(0)
	assert.Error(err)

	target, err := NewStandardNormal(2)
	assert.NoError(err)
	assert.Equal(2, target.Dim())

	// At the origin the std normal log-density is -dim/2 * ln(2*pi)
	lp, err := target.LogDensity([]float64{0.0, 0.0})
	assert.NoError(err)
	assert.InDelta(-math.Log(2.0*math.Pi), lp, 1e-12)

	// One unit out in a single coordinate drops the log-density by 1/2
	lp2, err := target.LogDensity([]float64{1.0, 0.0})
	assert.NoError(err)
	assert.InDelta(lp-0.5, lp2, 1e-12)

	_, err = target.LogDensity([]float64{0.0})
	assert.Error(err)
}

func TestMultivariateNormalBadCov(t *testing.T) {
	assert := assert.New(t)

	// Not positive definite
	cov := mat.NewSymDense(2, []float64{1.0, 2.0, 2.0, 1.0})
	_, err := NewMultivariateNormal([]float64{0.0, 0.0}, cov)
	assert.Error(err)

	// Dim mismatch
	cov = mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0})
	_, err = NewMultivariateNormal([]float64{0.0}, cov)
	assert.Error(err)
}

func TestRosenbrock(t *testing.T) {
	assert := assert.New(t)

	target := NewRosenbrock()

	// Mode is at (1, 1) with log-density 0
	lp, err := target.LogDensity([]float64{1.0, 1.0})
	assert.NoError(err)
	assert.InDelta(0.0, lp, 1e-12)

	// Everywhere else is strictly lower
	for _, x := range [][]float64{{0.0, 0.0}, {1.0, 2.0}, {-1.0, 1.0}, {2.0, 4.0001}} {
		lp, err = target.LogDensity(x)
		assert.NoError(err)
		assert.True(lp < 0.0, "Expected log-density < 0 at %v, got %v", x, lp)
	}

	_, err = target.LogDensity([]float64{1.0, 1.0, 1.0})
	assert.Error(err)
}

func TestBoundedBox(t *testing.T) {
	assert := assert.New(t)

	inner, err := NewStandardNormal(2)
	assert.NoError(err)

	_, err = NewBoundedBox(inner, []float64{0.0, 0.0}, []float64{1.0})
	assert.Error(err)
	_, err = NewBoundedBox(inner, []float64{1.0, 0.0}, []float64{1.0, 1.0})
	assert.Error(err)

	box, err := NewBoundedBox(inner, []float64{-1.0, -1.0}, []float64{1.0, 1.0})
	assert.NoError(err)

	// Inside defers to the inner target
	lp, err := box.LogDensity([]float64{0.0, 0.0})
	assert.NoError(err)
	want, _ := inner.LogDensity([]float64{0.0, 0.0})
	assert.Equal(want, lp)

	// Outside is -Inf, not an error
	lp, err = box.LogDensity([]float64{0.0, 2.0})
	assert.NoError(err)
	assert.True(math.IsInf(lp, -1))
}

func TestLogDensityFunc(t *testing.T) {
	assert := assert.New(t)

	var target TargetDensity = LogDensityFunc(func(x []float64) (float64, error) {
		return -x[0] * x[0], nil
	})

	lp, err := target.LogDensity([]float64{2.0})
	assert.NoError(err)
	assert.Equal(-4.0, lp)
}
