package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaders_KnownFormats(t *testing.T) {
	require.Contains(t, readers, "solomon")
	require.Contains(t, readers, "lilim")
	assert.Len(t, readers, 2)
}

func TestSolveCmd_RequiresTwoPositionalArgs(t *testing.T) {
	assert.Error(t, solveCmd.Args(solveCmd, []string{"problem.txt"}))
	assert.Error(t, solveCmd.Args(solveCmd, []string{"problem.txt", "solomon", "extra"}))
	assert.NoError(t, solveCmd.Args(solveCmd, []string{"problem.txt", "solomon"}))
}

func TestSolveCmd_FlagDefaults(t *testing.T) {
	assert.Equal(t, "0", solveCmd.Flags().Lookup("seed").DefValue)
	assert.Equal(t, "2000", solveCmd.Flags().Lookup("iterations").DefValue)
	assert.Equal(t, "info", solveCmd.Flags().Lookup("log").DefValue)
}
