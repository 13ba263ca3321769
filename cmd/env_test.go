package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().IntP("associativity", "a", 4, "")
	c.Flags().Int64("seed", 0, "")
	c.Flags().String("model", "", "")
	c.Flags().String("log", "warn", "")
	return c
}

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestApplyEnvDefaults_EnvironmentFillsUnsetFlags(t *testing.T) {
	c := newEnvTestCommand()
	t.Setenv(envAssociativity, "8")
	unsetenv(t, envSeed)
	unsetenv(t, envModel)
	unsetenv(t, envLog)

	require.NoError(t, applyEnvDefaults(c, ""))

	ways, _ := c.Flags().GetInt("associativity")
	assert.Equal(t, 8, ways)
	assert.False(t, c.Flags().Changed("seed"))
}

func TestApplyEnvDefaults_ExplicitFlagWins(t *testing.T) {
	c := newEnvTestCommand()
	require.NoError(t, c.Flags().Set("seed", "5"))
	t.Setenv(envSeed, "9")
	unsetenv(t, envAssociativity)
	unsetenv(t, envModel)
	unsetenv(t, envLog)

	require.NoError(t, applyEnvDefaults(c, ""))

	seed, _ := c.Flags().GetInt64("seed")
	assert.Equal(t, int64(5), seed)
}

func TestApplyEnvDefaults_LoadsDotEnvFile(t *testing.T) {
	c := newEnvTestCommand()
	for _, key := range []string{envAssociativity, envSeed, envModel, envLog} {
		unsetenv(t, key)
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CACHESIM_MODEL=model.yaml\nCACHESIM_LOG=debug\n"), 0644))

	require.NoError(t, applyEnvDefaults(c, path))

	model, _ := c.Flags().GetString("model")
	logLevel, _ := c.Flags().GetString("log")
	assert.Equal(t, "model.yaml", model)
	assert.Equal(t, "debug", logLevel)
}

func TestApplyEnvDefaults_MissingFileIsIgnored(t *testing.T) {
	c := newEnvTestCommand()
	for _, key := range []string{envAssociativity, envSeed, envModel, envLog} {
		unsetenv(t, key)
	}
	assert.NoError(t, applyEnvDefaults(c, filepath.Join(t.TempDir(), "absent.env")))
}

func TestApplyEnvDefaults_BadValue_Error(t *testing.T) {
	c := newEnvTestCommand()
	t.Setenv(envAssociativity, "four")
	assert.Error(t, applyEnvDefaults(c, ""))
}
