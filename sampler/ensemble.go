package sampler

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/CraigKelly/ensample/rand"
)

// An Ensemble advances a whole generation of walkers one iteration at a
// time. Every walker owns an independent PRNG stream, so the per-walker
// updates run concurrently and the result never depends on goroutine
// scheduling: walker i consumes only stream i, and every move reads only
// the previous generation.
type Ensemble struct {
	move     Move
	nWalkers int
	streams  []*rand.Generator
}

// NewEnsemble creates an ensemble of nWalkers walkers updated with the given
// move. The per-walker streams are derived from seed, so two ensembles built
// with the same seed and move produce identical runs.
func NewEnsemble(move Move, nWalkers int, seed int64) (*Ensemble, error) {
	if move == nil {
		return nil, errors.New("No move supplied")
	}
	if nWalkers < 2 {
		return nil, errors.Wrapf(ErrInsufficientWalkers, "%d walker(s) requested", nWalkers)
	}

	streams := make([]*rand.Generator, nWalkers)
	for i := range streams {
		g, err := rand.NewGeneratorSlice([]uint64{uint64(seed), uint64(i)})
		if err != nil {
			return nil, errors.Wrapf(err, "Could not create stream for walker %d", i)
		}
		streams[i] = g
	}

	return &Ensemble{
		move:     move,
		nWalkers: nWalkers,
		streams:  streams,
	}, nil
}

// Size returns the number of walkers in the ensemble
func (e *Ensemble) Size() int {
	return e.nWalkers
}

// Advance produces the next generation from cur. For each walker i a
// complementary partner j != i is drawn uniformly from the rest of cur, and
// the move is applied to the pair. All pairings and moves read exclusively
// from cur, and the new generation is published only if every walker update
// succeeds - a failed density evaluation aborts the whole iteration.
func (e *Ensemble) Advance(cur Generation) (Generation, error) {
	if len(cur) != e.nWalkers {
		return nil, errors.Errorf("Generation has %d walkers, ensemble expects %d", len(cur), e.nWalkers)
	}
	if err := cur.Check(); err != nil {
		return nil, errors.Wrap(err, "Can not advance invalid generation")
	}

	next := make(Generation, e.nWalkers)
	moveErrs := make([]error, e.nWalkers)

	var wg sync.WaitGroup
	for i := range cur {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			g := e.streams[i]

			// offset in 1..n-1 guarantees j != i and gives every other
			// walker equal probability
			offset := 1 + int(g.Int63n(int64(e.nWalkers-1)))
			j := (i + offset) % e.nWalkers

			next[i], moveErrs[i] = e.move.Move(g, cur[i], cur[j])
		}(i)
	}
	wg.Wait()

	for i, err := range moveErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "Walker %d failed to advance", i)
		}
	}

	return next, nil
}
