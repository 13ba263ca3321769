package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/cachesim/cachesim/sim"
	"github.com/cachesim/cachesim/sim/trace"
	"github.com/cachesim/cachesim/sim/workload"
)

var (
	// CLI flags for the run command
	tracePath     string // Trace file to replay
	associativity int    // L2 ways per set
	seed          int64  // Seed for L2 victim selection and synthetic DRAM data
	modelPath     string // Optional YAML timing/energy model
	accessLogPath string // Optional CSV access log
	accessDBPath  string // Optional SQLite access log (path stem)
	showBanner    bool   // Print the title banner
	logLevel      string // Log verbosity level
	envFile       string // Optional .env file with CACHESIM_* defaults
	showSummary   bool   // Print per-level hit rates from the in-memory access trace
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "Trace-driven simulator for a two-level CPU cache hierarchy",
}

// runOptions is everything runSimulation needs, resolved from flags and environment.
type runOptions struct {
	TracePath     string
	Config        sim.HierarchyConfig
	AccessLogPath string
	AccessDBPath  string
	Banner        bool
	Summary       bool
}

// runCmd replays a trace and prints the statistics report
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a trace through the cache hierarchy",
	Run: func(cmd *cobra.Command, args []string) {
		if err := applyEnvDefaults(cmd, envFile); err != nil {
			logrus.Fatalf("Failed to load environment defaults: %v", err)
		}

		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		cfg := sim.NewHierarchyConfig(associativity, seed)
		if err := sim.ValidateAssociativity(associativity); err != nil {
			logrus.Fatalf("%v", err)
		}
		if modelPath != "" {
			if err := LoadModelFile(modelPath, &cfg); err != nil {
				logrus.Fatalf("Failed to load model %s: %v", modelPath, err)
			}
		}

		opts := runOptions{
			TracePath:     tracePath,
			Config:        cfg,
			AccessLogPath: accessLogPath,
			AccessDBPath:  accessDBPath,
			Banner:        showBanner,
			Summary:       showSummary,
		}
		logrus.Infof("Starting simulation of %s with associativity=%d, seed=%d", tracePath, associativity, seed)
		startTime := time.Now()
		if _, err := runSimulation(opts, os.Stdout); err != nil {
			exitWithError(err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// runSimulation builds the hierarchy, replays the trace and writes the report to out.
// On a malformed trace the partial metrics are returned together with the error.
func runSimulation(opts runOptions, out io.Writer) (sim.Metrics, error) {
	s, err := sim.NewSimulator(opts.Config)
	if err != nil {
		return sim.Metrics{}, err
	}

	sinks, err := openSinks(opts)
	if err != nil {
		return sim.Metrics{}, err
	}
	recorders := make(trace.Fanout, 0, len(sinks)+1)
	for _, sk := range sinks {
		recorders = append(recorders, sk)
	}
	var accesses *trace.AccessTrace
	if opts.Summary {
		accesses = trace.NewAccessTrace()
		recorders = append(recorders, accesses)
	}
	if len(recorders) > 0 {
		s.SetRecorder(recorders)
	}

	if opts.Banner {
		printBanner(out)
	}
	fmt.Fprintf(out, "File: %s\n\n", opts.TracePath)
	fmt.Fprintln(out, "Running simulation ...")

	n, replayErr := workload.ReplayFile(opts.TracePath, s)
	closeErr := closeSinks(sinks)
	if replayErr != nil {
		return s.Snapshot(), replayErr
	}
	if closeErr != nil {
		return s.Snapshot(), closeErr
	}
	logrus.Debugf("dispatched %d records", n)

	fmt.Fprintf(out, "Simulation Complete.\n\n")
	s.Metrics.Print(out, opts.Config.Associativity)
	if accesses != nil {
		printSummary(out, trace.Summarize(accesses))
	}
	fmt.Fprintln(out, "==========================")
	return s.Snapshot(), nil
}

// printSummary writes per-level hit rates in hierarchy order.
func printSummary(out io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintf(out, "Access Summary (%d records, %d ignore, %d flush):\n", summary.TotalRecords, summary.Ignores, summary.Flushes)
	fmt.Fprintf(out, "Component | Reads     | Writes    | Writebacks | Hit Rate\n")
	fmt.Fprintf(out, "----------|-----------|-----------|------------|---------\n")
	for _, l := range sim.Levels {
		ls, ok := summary.PerLevel[l.String()]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%-9s | %-9d | %-9d | %-10d | %6.2f%%\n", l, ls.Reads, ls.Writes, ls.Writebacks, 100*ls.HitRate())
	}
	fmt.Fprintln(out)
}

// exitWithError logs err and exits through atexit so registered sink flushes run.
func exitWithError(err error) {
	logrus.Errorf("%v", err)
	atexit.Exit(1)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Trace file (<opcode> <hex-address> <hex-value> per line)")
	runCmd.Flags().IntVarP(&associativity, "associativity", "a", sim.DefaultAssociativity, "L2 associativity (positive even integer)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for L2 victim selection (default: wall-clock time)")
	runCmd.Flags().StringVar(&modelPath, "model", "", "YAML file overriding timing and energy constants")
	runCmd.Flags().StringVar(&accessLogPath, "access-log", "", "Write every level access to this CSV file")
	runCmd.Flags().StringVar(&accessDBPath, "access-db", "", "Write every level access to <stem>.sqlite3")
	runCmd.Flags().BoolVar(&showBanner, "banner", false, "Print the title banner")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Keep every access in memory and print per-level hit rates")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional file with CACHESIM_* defaults")
	_ = runCmd.MarkFlagRequired("trace")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
