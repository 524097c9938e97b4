package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// startupParams holds the flags and loggers shared by every subcommand.
type startupParams struct {
	verbose     bool
	configFile  string
	traceFile   string
	randomSeed  int64
	monitorAddr string

	out   *log.Logger
	trace *log.Logger
}

// Setup creates the loggers implied by the current flags. Must be called
// before a subcommand does any real work.
func (sp *startupParams) Setup() error {
	sp.out = log.New(os.Stdout, "", 0)

	if len(sp.traceFile) > 0 {
		f, err := os.Create(sp.traceFile)
		if err != nil {
			return errors.Wrapf(err, "Could not create trace file %s", sp.traceFile)
		}
		sp.trace = log.New(f, "", 0)
	} else {
		sp.trace = log.New(io.Discard, "", 0)
	}

	return nil
}

// Verbose only logs when the verbose flag is set
func (sp *startupParams) Verbose(format string, v ...interface{}) {
	if sp.verbose {
		sp.out.Printf(format, v...)
	}
}

var sp = &startupParams{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ensample",
	Short: "Affine-Invariant Ensemble MCMC Sampling",
	Long: `ensample samples arbitrary continuous log-densities with the
Goodman & Weare stretch move. Among other features:

  - A population ("ensemble") of walkers that needs no hand-tuned proposal scale
  - Built-in Gaussian, Rosenbrock, and box-bounded targets
  - Chain orchestration with burn-in, acceptance tracking, and moment reports
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ensample\n")
		fmt.Printf("Verbose:  %v\n", sp.verbose)
		fmt.Printf("Config:   %s\n", sp.configFile)
		fmt.Printf("Rnd Seed: %d\n", sp.randomSeed)
		fmt.Printf("\nRun 'ensample sample --help' to draw some samples\n")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&sp.verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().StringVarP(&sp.configFile, "config", "c", "", "YAML run config file (overrides flags)")
	rootCmd.PersistentFlags().StringVarP(&sp.traceFile, "trace", "t", "", "Trace file for per-iteration output")
	rootCmd.PersistentFlags().Int64VarP(&sp.randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.PersistentFlags().StringVarP(&sp.monitorAddr, "monitor", "m", "", "Address for the expvar progress monitor (e.g. :8000), empty disables")

	rootCmd.AddCommand(sampleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
