package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestNewApp_HasExpectedSubcommands(t *testing.T) {
	app := NewApp()
	names := map[string]bool{}
	for _, c := range app.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"lint", "purify", "transpile", "score", "version"} {
		assert.True(t, names[want], "expected subcommand %q", want)
	}
}

func TestRunLint_ExitsSuccessOnCleanScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "build.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nset -eu\necho hi\n"), 0o644))

	err := NewApp().Run(context.Background(), []string{"bashrs", "lint", "--format", "json", script})
	assert.NoError(t, err)
}

func TestRunLint_ExitsNoFilesOnEmptyDir(t *testing.T) {
	dir := t.TempDir()
	err := NewApp().Run(context.Background(), []string{"bashrs", "lint", dir})
	require.Error(t, err)
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitNoFiles, exitErr.ExitCode())
}

func TestRunPurify_RewritesMkdir(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "setup.sh")
	require.NoError(t, os.WriteFile(script, []byte("mkdir /tmp/build\n"), 0o644))

	err := NewApp().Run(context.Background(), []string{"bashrs", "purify", "--write", script})
	require.NoError(t, err)

	out, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(out), "mkdir -p /tmp/build")
}

func TestRunScore_ReportsJSON(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "build.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nset -eu\necho hi\n"), 0o644))

	err := NewApp().Run(context.Background(), []string{"bashrs", "score", "--json", dir})
	assert.NoError(t, err)
}
