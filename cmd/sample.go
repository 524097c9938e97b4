package cmd

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gopkg.in/yaml.v3"

	"github.com/CraigKelly/ensample/model"
	"github.com/CraigKelly/ensample/sampler"
)

// runConfig is everything the sample command needs for one run. Any flag can
// also come from a YAML config file, in which case the file wins.
type runConfig struct {
	Target     string  `yaml:"target"`
	Dims       int     `yaml:"dims"`
	Walkers    int     `yaml:"walkers"`
	Chains     int     `yaml:"chains"`
	Iterations int64   `yaml:"iterations"`
	BurnIn     int64   `yaml:"burnIn"`
	Stretch    float64 `yaml:"stretch"`
	StartLow   float64 `yaml:"startLow"`
	StartHigh  float64 `yaml:"startHigh"`
}

var cfg = &runConfig{}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample a built-in target density with the stretch move",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sp.Setup(); err != nil {
			return err
		}
		if len(sp.configFile) > 0 {
			if err := cfg.loadFile(sp.configFile); err != nil {
				return err
			}
		}
		return SampleRun(sp, cfg)
	},
}

func init() {
	sampleCmd.Flags().StringVar(&cfg.Target, "target", "normal", "Target density: normal, rosenbrock, or boxed-normal")
	sampleCmd.Flags().IntVar(&cfg.Dims, "dims", 2, "Parameter dimensionality (rosenbrock is always 2)")
	sampleCmd.Flags().IntVar(&cfg.Walkers, "walkers", 50, "Walkers per ensemble (at least 2)")
	sampleCmd.Flags().IntVar(&cfg.Chains, "chains", 2, "Independent chains to run concurrently")
	sampleCmd.Flags().Int64Var(&cfg.Iterations, "iters", 2000, "Recorded iterations per chain")
	sampleCmd.Flags().Int64Var(&cfg.BurnIn, "burnin", 500, "Burn-in iterations per chain (not recorded)")
	sampleCmd.Flags().Float64Var(&cfg.Stretch, "stretch", sampler.DefaultStretch, "Stretch scale a (must be > 1)")
	sampleCmd.Flags().Float64Var(&cfg.StartLow, "start-low", -4.0, "Lower bound for the uniform starting box")
	sampleCmd.Flags().Float64Var(&cfg.StartHigh, "start-high", 4.0, "Upper bound for the uniform starting box")
}

// loadFile overrides the config with the values in the given YAML file.
func (c *runConfig) loadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "Could not READ config from %s", filename)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "Could not PARSE config from %s", filename)
	}
	return nil
}

// buildTarget maps the config's target name to a model density.
func buildTarget(c *runConfig) (model.TargetDensity, error) {
	switch strings.ToLower(c.Target) {
	case "normal":
		return model.NewStandardNormal(c.Dims)
	case "rosenbrock":
		c.Dims = 2
		return model.NewRosenbrock(), nil
	case "boxed-normal":
		inner, err := model.NewStandardNormal(c.Dims)
		if err != nil {
			return nil, err
		}
		lo := make([]float64, c.Dims)
		hi := make([]float64, c.Dims)
		for i := range lo {
			lo[i] = -2.0
			hi[i] = 2.0
		}
		return model.NewBoundedBox(inner, lo, hi)
	default:
		return nil, errors.Errorf("Unknown target %s", c.Target)
	}
}

// SampleRun performs the entire sampling run described by cfg: start every
// chain from independent uniform draws, advance them concurrently, then
// report acceptance, pooled moments, and a trace plot.
func SampleRun(sp *startupParams, cfg *runConfig) error {
	target, err := buildTarget(cfg)
	if err != nil {
		return err
	}
	if cfg.Chains < 1 {
		return errors.Errorf("Need at least 1 chain, have %d", cfg.Chains)
	}
	if cfg.StartLow >= cfg.StartHigh {
		return errors.Errorf("Starting box [%v, %v] is empty", cfg.StartLow, cfg.StartHigh)
	}

	sp.out.Printf("Target:  %s (%d dims)\n", cfg.Target, cfg.Dims)
	sp.out.Printf("Walkers: %d x %d chain(s)\n", cfg.Walkers, cfg.Chains)
	sp.out.Printf("Iters:   %d + %d burn-in\n", cfg.Iterations, cfg.BurnIn)
	sp.out.Printf("Stretch: %v, Seed: %d\n", cfg.Stretch, sp.randomSeed)

	mon := &monitor{}
	if len(sp.monitorAddr) > 0 {
		if err := mon.Start(sp.monitorAddr); err != nil {
			return errors.Wrap(err, "Could not start progress monitor")
		}
		defer mon.Stop()

		mon.Walkers.Set(int64(cfg.Walkers))
		mon.Chains.Set(int64(cfg.Chains))
		mon.BurnIn.Set(cfg.BurnIn)
		mon.MaxIters.Set(cfg.Iterations)
	}

	bounds := make([]r1.Interval, cfg.Dims)
	for i := range bounds {
		bounds[i] = r1.Interval{Min: cfg.StartLow, Max: cfg.StartHigh}
	}

	startTime := time.Now()

	chains := make([]*sampler.Chain, cfg.Chains)
	errChs := make([]<-chan error, cfg.Chains)
	var wg sync.WaitGroup

	for c := range chains {
		chainSeed := sp.randomSeed + int64(c)

		move, err := sampler.NewStretchMove(target, cfg.Stretch)
		if err != nil {
			return err
		}

		ens, err := sampler.NewEnsemble(move, cfg.Walkers, chainSeed)
		if err != nil {
			return err
		}

		starter := distmv.NewUniform(bounds, xrand.NewSource(uint64(chainSeed)))
		start, err := sampler.NewGenerationFrom(target, starter, cfg.Walkers, cfg.Dims)
		if err != nil {
			return errors.Wrapf(err, "Could not initialize chain %d", c)
		}

		ch, err := sampler.NewChain(ens, start, 100, cfg.BurnIn)
		if err != nil {
			return errors.Wrapf(err, "Could not burn in chain %d", c)
		}

		chains[c] = ch
		errChs[c] = ch.RunAsync(&wg, cfg.Iterations)
	}

	wg.Wait()
	for c, errCh := range errChs {
		if err := <-errCh; err != nil {
			return errors.Wrapf(err, "Chain %d failed", c)
		}
	}

	runTime := time.Since(startTime)
	sp.out.Printf("Run time: %v\n", runTime)

	totalIters := int64(0)
	for c, ch := range chains {
		sp.Verbose("Chain %d: %d iters, accept rate %.3f, drift %.3f\n", c, ch.TotalIterations, ch.AcceptRate(), ch.Drift())
		totalIters += ch.TotalIterations
	}

	pool, err := sampler.MergePools(chains)
	if err != nil {
		return err
	}

	mom, err := model.NewMoments(pool)
	if err != nil {
		return errors.Wrap(err, "Could not calculate pooled moments")
	}

	if len(sp.monitorAddr) > 0 {
		mon.RunTime.Set(runTime.Seconds())
		mon.Iterations.Set(totalIters)
		mon.TotalSamples.Set(int64(mom.N))
		mon.AcceptRate.Set(chains[0].AcceptRate())
	}

	sp.out.Printf("Pooled samples: %d\n", mom.N)
	sp.out.Printf("Mean: %8.5f\n", mom.Mean)
	sp.out.Printf("Cov:\n")
	for i := 0; i < len(mom.Mean); i++ {
		row := make([]float64, len(mom.Mean))
		for j := range row {
			row[j] = mom.Cov.At(i, j)
		}
		sp.out.Printf("  %8.5f\n", row)
	}

	plot := asciigraph.Plot(
		chains[0].MeanTrace,
		asciigraph.Height(12),
		asciigraph.Caption("chain 0: coordinate-0 ensemble mean"),
	)
	sp.out.Printf("%s\n", plot)

	for i, v := range chains[0].MeanTrace {
		sp.trace.Printf("%d %v\n", i, v)
	}

	return nil
}
