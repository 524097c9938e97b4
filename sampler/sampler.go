package sampler

import (
	"github.com/CraigKelly/ensample/rand"
)

// A Move is the proposal/acceptance kernel applied to a single walker given
// a complementary walker from the rest of the ensemble. A Move is selected
// once per run. Implementations must be pure given the random draws, must
// not retain or mutate the walkers they receive, and on rejection must
// return cur itself rather than a copy.
type Move interface {
	Move(gen *rand.Generator, cur *Walker, other *Walker) (*Walker, error)
}
