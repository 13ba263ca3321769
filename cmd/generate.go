package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/sim/workload"
)

var (
	generateSpecPath string
	generateOutput   string
	generateRecords  int
	generateSeed     int64
)

// generateCmd writes a synthetic trace
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic trace",
	Long:  "Generate a seeded synthetic trace from a YAML spec (or built-in defaults). Output is written to stdout unless --output is given.",
	Run: func(cmd *cobra.Command, args []string) {
		spec := workload.DefaultGenerateSpec()
		if generateSpecPath != "" {
			loaded, err := workload.LoadGenerateSpec(generateSpecPath)
			if err != nil {
				logrus.Fatalf("Failed to load spec %s: %v", generateSpecPath, err)
			}
			spec = *loaded
		}
		if cmd.Flags().Changed("records") {
			spec.Records = generateRecords
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = generateSeed
		}

		records, err := workload.Generate(&spec)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}

		out := os.Stdout
		if generateOutput != "" {
			file, err := os.Create(generateOutput)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", generateOutput, err)
			}
			defer func() { _ = file.Close() }()
			out = file
		}
		if err := workload.WriteTrace(out, records); err != nil {
			logrus.Fatalf("Failed to write trace: %v", err)
		}
		logrus.Infof("Wrote %d records", len(records))
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateSpecPath, "spec", "", "YAML generate spec")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output trace path (default stdout)")
	generateCmd.Flags().IntVar(&generateRecords, "records", 0, "Override the number of records")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Override the generation seed")

	rootCmd.AddCommand(generateCmd)
}
