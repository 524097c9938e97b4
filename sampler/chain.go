package sampler

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/CraigKelly/ensample/buffer"
)

// Chain drives an Ensemble across iterations. It owns the current
// generation, tracks a window of recent per-iteration acceptance rates,
// records a coordinate-0 ensemble-mean trace for plotting, and pools every
// post-burn-in walker position for moment diagnostics.
type Chain struct {
	Sampler         *Ensemble
	Current         Generation
	AcceptWindow    *buffer.CircularFloat
	MeanTrace       []float64
	Pool            [][]float64
	TotalIterations int64
}

// NewChain returns a chain ready to go. It even performs burn-in: burnIn
// iterations are run up front and nothing from them is recorded.
func NewChain(samp *Ensemble, start Generation, acceptWindow int, burnIn int64) (*Chain, error) {
	if samp == nil {
		return nil, errors.New("No ensemble supplied")
	}
	if err := start.Check(); err != nil {
		return nil, errors.Wrap(err, "Invalid starting generation")
	}
	if acceptWindow < 2 {
		return nil, errors.Errorf("Acceptance window must be at least 2, have %d", acceptWindow)
	}

	c := &Chain{
		Sampler:      samp,
		Current:      start,
		AcceptWindow: buffer.NewCircularFloat(acceptWindow),
		MeanTrace:    make([]float64, 0, 64),
		Pool:         make([][]float64, 0, 1024),
	}

	for i := int64(0); i < burnIn; i++ {
		if err := c.step(false); err != nil {
			return nil, errors.Wrap(err, "Failure during chain burn in")
		}
	}

	return c, nil
}

// Step advances the chain a single iteration and records the result.
func (c *Chain) Step() error {
	return c.step(true)
}

// Run advances the chain the given number of iterations, recording each one.
func (c *Chain) Run(iterations int64) error {
	for i := int64(0); i < iterations; i++ {
		if err := c.step(true); err != nil {
			return errors.Wrapf(err, "Failure at chain iteration %d", c.TotalIterations)
		}
	}
	return nil
}

// RunAsync runs the chain in the background. The returned channel receives
// the terminal error value (possibly nil) and wg is signaled on completion.
func (c *Chain) RunAsync(wg *sync.WaitGroup, iterations int64) <-chan error {
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- c.Run(iterations)
	}()

	return errCh
}

// step takes one sample and optionally updates the chain state. An advance
// failure leaves Current untouched, so a partial generation is never
// published.
func (c *Chain) step(record bool) error {
	next, err := c.Sampler.Advance(c.Current)
	if err != nil {
		return errors.Wrap(err, "Error advancing ensemble")
	}

	// Rejections return the previous walker pointer, so pointer identity
	// counts acceptances exactly.
	accepted := 0
	for i, w := range next {
		if w != c.Current[i] {
			accepted++
		}
	}

	c.Current = next
	c.TotalIterations++

	if record {
		c.AcceptWindow.Add(float64(accepted) / float64(len(next)))

		mean := 0.0
		for _, w := range next {
			mean += w.Point[0]
		}
		c.MeanTrace = append(c.MeanTrace, mean/float64(len(next)))

		for _, w := range next {
			p := make([]float64, len(w.Point))
			copy(p, w.Point)
			c.Pool = append(c.Pool, p)
		}
	}

	return nil
}

// AcceptRate returns the mean acceptance rate over the current window.
func (c *Chain) AcceptRate() float64 {
	return c.AcceptWindow.Mean()
}

// Drift returns the difference between the most recent and oldest half of
// the acceptance window, a cheap stationarity signal. Returns NaN until the
// window has filled.
func (c *Chain) Drift() float64 {
	first, second, ok := c.AcceptWindow.HalfMeans()
	if !ok {
		return math.NaN()
	}
	return second - first
}

// MergePools concatenates the recorded sample pools of multiple chains into
// a single set suitable for moment calculations.
func MergePools(chains []*Chain) ([][]float64, error) {
	if len(chains) < 1 {
		return nil, errors.Errorf("Can not merge 0 chains")
	}

	dim := chains[0].Current.Dim()
	total := 0
	for i, ch := range chains {
		if ch.Current.Dim() != dim {
			return nil, errors.Wrapf(ErrDimensionMismatch, "Chain %d has dim %d, expected %d", i, ch.Current.Dim(), dim)
		}
		total += len(ch.Pool)
	}

	merged := make([][]float64, 0, total)
	for _, ch := range chains {
		merged = append(merged, ch.Pool...)
	}

	return merged, nil
}
