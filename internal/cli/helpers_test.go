package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// workspace changes into a fresh temp directory and returns a goldie
// instance rooted at this package's testdata/golden.
func workspace(t *testing.T) *goldie.Goldie {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	fixtures := filepath.Join(wd, "testdata", "golden")

	t.Chdir(t.TempDir())

	return goldie.New(t,
		goldie.WithFixtureDir(fixtures),
		goldie.WithNameSuffix(".golden"),
	)
}

// writeFile creates a file relative to the current directory.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// readFile reads a file relative to the current directory.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	root := NewRootCommand()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
