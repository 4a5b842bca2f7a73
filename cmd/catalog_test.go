package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+), unavailable on this toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestCatalogCommandPrintsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"catalog"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "questions:")
	assert.Contains(t, output, "field: province")
	assert.Contains(t, output, "field: insurable_hours_last_52_weeks")
	assert.Contains(t, output, "triggers:")
	assert.Contains(t, output, "insurable hours")
}
