package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Environment variables that supply defaults for run flags.
const (
	envAssociativity = "CACHESIM_ASSOCIATIVITY"
	envSeed          = "CACHESIM_SEED"
	envModel         = "CACHESIM_MODEL"
	envLog           = "CACHESIM_LOG"
)

// envFlags maps each environment variable to the flag it defaults.
var envFlags = []struct {
	env  string
	flag string
}{
	{envAssociativity, "associativity"},
	{envSeed, "seed"},
	{envModel, "model"},
	{envLog, "log"},
}

// applyEnvDefaults loads path (if it exists) into the process environment and
// then sets every flag the user did not pass explicitly from its CACHESIM_*
// variable. Variables already in the environment win over the file; explicit
// flags win over both.
func applyEnvDefaults(cmd *cobra.Command, path string) error {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			logrus.Debugf("Loaded environment defaults from %s", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	for _, ef := range envFlags {
		value, ok := os.LookupEnv(ef.env)
		if !ok || cmd.Flags().Changed(ef.flag) {
			continue
		}
		if err := cmd.Flags().Set(ef.flag, value); err != nil {
			return fmt.Errorf("%s=%q: %w", ef.env, value, err)
		}
	}
	return nil
}
