package sampler

import (
	"github.com/pkg/errors"
)

// Sentinel errors for the failure modes the ensemble distinguishes. Call
// sites wrap these with context, so use errors.Cause to test for them.
var (
	// ErrInvalidStart means the supplied starting points (or point source)
	// can not produce a valid first generation.
	ErrInvalidStart = errors.New("Invalid starting ensemble")

	// ErrInsufficientWalkers means fewer than 2 walkers were requested: the
	// stretch move needs a complementary walker distinct from the walker
	// being updated.
	ErrInsufficientWalkers = errors.New("Ensemble requires at least 2 walkers")

	// ErrDimensionMismatch means a walker's parameter vector disagrees with
	// the ensemble's established dimensionality. This should be unreachable
	// if generations are only built by this package.
	ErrDimensionMismatch = errors.New("Walker dimension mismatch")
)
