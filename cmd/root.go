// cmd/root.go
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AwesomeIbex/vrp/solver"
	"github.com/AwesomeIbex/vrp/solver/stream"
)

var (
	seed       int64
	iterations int
	maxTime    float64
	logLevel   string
	configPath string
	outPath    string
)

// readers maps the format tag to its problem parser.
var readers = map[string]func(io.Reader) (*solver.Problem, error){
	"solomon": stream.ParseSolomon,
	"lilim":   stream.ParseLilim,
}

var rootCmd = &cobra.Command{
	Use:   "vrp",
	Short: "Solves variations of the Vehicle Routing Problem",
}

var solveCmd = &cobra.Command{
	Use:   "solve PROBLEM FORMAT",
	Short: "Run the ruin-and-recreate search on a benchmark instance",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		problemPath, format := args[0], args[1]
		reader, ok := readers[format]
		if !ok {
			logrus.Fatalf("Unknown problem format %q; valid formats: solomon, lilim", format)
		}

		cfg := solver.DefaultSolverConfig()
		if configPath != "" {
			cfg, err = solver.LoadSolverConfig(configPath)
			if err != nil {
				logrus.Fatalf("Invalid solver config: %v", err)
			}
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("iterations") {
			cfg.Iterations = iterations
		}
		if cmd.Flags().Changed("max-time") {
			cfg.MaxTimeSeconds = maxTime
		}

		f, err := os.Open(problemPath)
		if err != nil {
			logrus.Fatalf("Cannot read %s problem from '%s': %v", format, problemPath, err)
		}
		problem, err := reader(f)
		f.Close()
		if err != nil {
			logrus.Fatalf("Cannot read %s problem from '%s': %v", format, problemPath, err)
		}
		problem.Objective = solver.NewTotalCost(cfg.UnassignedPenalty)

		logrus.Infof("Starting search with seed=%d, iterations=%d, max_time=%.1fs",
			cfg.Seed, cfg.Iterations, cfg.MaxTimeSeconds)
		s := solver.NewSolver(problem, cfg)
		solution := s.Solve()
		s.Telemetry().Summary().Print()

		sink := os.Stdout
		if outPath != "" {
			sink, err = os.Create(outPath)
			if err != nil {
				logrus.Fatalf("Cannot create output file '%s': %v", outPath, err)
			}
			defer sink.Close()
		}
		if err := stream.WriteSolomon(sink, solution); err != nil {
			logrus.Fatalf("Cannot write solution: %v", err)
		}
		logrus.Info("Search complete.")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	solveCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for all stochastic choices")
	solveCmd.Flags().IntVar(&iterations, "iterations", 2000, "Refinement iteration budget")
	solveCmd.Flags().Float64Var(&maxTime, "max-time", 0, "Wall-clock budget in seconds (0 = unlimited)")
	solveCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	solveCmd.Flags().StringVar(&configPath, "config", "", "Path to a solver config yaml file")
	solveCmd.Flags().StringVar(&outPath, "out", "", "Write the solution to this file instead of stdout")

	rootCmd.AddCommand(solveCmd)
}
