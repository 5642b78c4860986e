package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"features", "export"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "lotmetrics", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestFeaturesCommand_Flags(t *testing.T) {
	for _, name := range []string{"lots", "boundaries", "output"} {
		flag := featuresCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "features command should have --%s flag", name)
	}
}

func TestExportCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "output"} {
		flag := exportCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "export command should have --%s flag", name)
	}
}
