package sampler

import (
	"math"

	"github.com/pkg/errors"

	"github.com/CraigKelly/ensample/model"
	"github.com/CraigKelly/ensample/rand"
)

// DefaultStretch is the standard scale parameter for the stretch move.
const DefaultStretch = 2.0

// StretchMove is the Goodman & Weare affine-invariant proposal: slide the
// walker along the line through its complementary walker, scaled by a random
// stretch factor z with density g(z) proportional to 1/sqrt(z) on [1/a, a].
// That exact z distribution is what makes the proposal transform correctly
// under affine reparameterization of the target, so it must not be swapped
// for a uniform or Gaussian stretch.
type StretchMove struct {
	Target model.TargetDensity
	A      float64
}

// NewStretchMove creates a stretch move for the given target. The scale a
// must be > 1; DefaultStretch is the usual choice.
func NewStretchMove(target model.TargetDensity, a float64) (*StretchMove, error) {
	if target == nil {
		return nil, errors.New("No target density supplied")
	}
	if a <= 1.0 {
		return nil, errors.Errorf("Stretch scale must be > 1, have %v", a)
	}

	return &StretchMove{Target: target, A: a}, nil
}

// Move proposes a stretched point for cur and accepts or rejects it. On
// rejection the original walker (same pointer) is returned.
func (s *StretchMove) Move(gen *rand.Generator, cur *Walker, other *Walker) (*Walker, error) {
	n := cur.Dim()
	if other.Dim() != n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "Walker has dim %d, complement has dim %d", n, other.Dim())
	}

	// z = ((a-1)u + 1)^2 / a, u uniform on [0,1) => z on [1/a, a)
	u := gen.Float64()
	z := (s.A-1.0)*u + 1.0
	z = z * z / s.A

	y := make([]float64, n)
	for i, x := range cur.Point {
		y[i] = x + z*(other.Point[i]-x)
	}

	lp, err := s.Target.LogDensity(y)
	if err != nil {
		return nil, errors.Wrap(err, "Target density evaluation failed")
	}

	// The (n-1) ln z term is the Jacobian of the stretch along the pair
	// line. An infeasible proposal (lp = -Inf) makes alpha = -Inf, and the
	// finite exponential draw below can never accept it.
	alpha := float64(n-1)*math.Log(z) + lp - cur.LogDensity
	if -gen.ExpFloat64() <= alpha {
		return &Walker{Point: y, LogDensity: lp}, nil
	}

	return cur, nil
}
