package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd verifies the root command wiring.
func TestRootCmd(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "ithomaps", rootCmd.Use)
	assert.NotNil(t, rootCmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

// TestBuildCmdFlags verifies the build command exposes its flags.
func TestBuildCmdFlags(t *testing.T) {
	cmd := getBuildCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "build", cmd.Use)

	for _, name := range []string{
		"output", "pretty", "archive", "species-limit",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name),
			"flag %s should exist", name)
	}
}

// TestBuildCmdIndependentInstances verifies each call returns an
// independent instance.
func TestBuildCmdIndependentInstances(t *testing.T) {
	cmd1 := getBuildCmd()
	cmd2 := getBuildCmd()
	assert.NotSame(t, cmd1, cmd2)
}
