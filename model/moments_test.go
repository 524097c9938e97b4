package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMomentsSimple(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMoments([][]float64{{1.0, 2.0}})
	assert.Error(err)

	_, err = NewMoments([][]float64{{1.0, 2.0}, {1.0}})
	assert.Error(err)

	points := [][]float64{
		{1.0, 10.0},
		{3.0, 14.0},
	}
	m, err := NewMoments(points)
	assert.NoError(err)
	assert.Equal(2, m.N)
	assert.InDelta(2.0, m.Mean[0], 1e-12)
	assert.InDelta(12.0, m.Mean[1], 1e-12)

	// Sample (n-1 denominator) variances: 2 and 8, covariance 4
	assert.InDelta(2.0, m.Cov.At(0, 0), 1e-12)
	assert.InDelta(8.0, m.Cov.At(1, 1), 1e-12)
	assert.InDelta(4.0, m.Cov.At(0, 1), 1e-12)
}

func TestMomentsDiffs(t *testing.T) {
	assert := assert.New(t)

	points := [][]float64{
		{-1.0, 0.0},
		{1.0, 0.0},
		{0.0, -1.0},
		{0.0, 1.0},
	}
	m, err := NewMoments(points)
	assert.NoError(err)

	d, err := m.MaxAbsMeanDiff([]float64{0.0, 0.0})
	assert.NoError(err)
	assert.InDelta(0.0, d, 1e-12)

	_, err = m.MaxAbsMeanDiff([]float64{0.0})
	assert.Error(err)

	// Each coordinate has sample variance 2/3, cross terms 0
	want := mat.NewSymDense(2, []float64{2.0 / 3.0, 0.0, 0.0, 2.0 / 3.0})
	d, err = m.MaxAbsCovDiff(want)
	assert.NoError(err)
	assert.InDelta(0.0, d, 1e-12)

	_, err = m.MaxAbsCovDiff(mat.NewSymDense(3, nil))
	assert.Error(err)
}
