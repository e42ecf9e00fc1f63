package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "portfolio ")
	assert.Contains(t, out.String(), "commit unknown")
}

func TestServeFlagsAreRegistered(t *testing.T) {
	for _, name := range []string{"addr", "source", "api-url", "data", "live-reload"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
