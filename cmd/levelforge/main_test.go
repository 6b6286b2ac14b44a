package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel writes a shell script that prints the contents of fixture and
// returns its path.
func fakeModel(t *testing.T, fixture string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script model runner requires a POSIX shell")
	}

	abs, err := filepath.Abs(fixture)
	require.NoError(t, err)

	script := filepath.Join(t.TempDir(), "fake-ollama")
	body := "#!/bin/sh\ncat '" + abs + "'\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEVELFORGE_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateAcceptedLevelIsWritten(t *testing.T) {
	dir := t.TempDir()
	model := fakeModel(t, "testdata/level9.js")

	out, err := execute(t, "--levels-dir", dir, "--executable", model)
	require.NoError(t, err)

	assert.Contains(t, out, "Generating level 9...")
	assert.Contains(t, out, "Successfully generated level 9")

	written, err := os.ReadFile(filepath.Join(dir, "level9.js"))
	require.NoError(t, err)
	fixture, err := os.ReadFile("testdata/level9.js")
	require.NoError(t, err)
	assert.Equal(t, string(bytes.TrimRight(fixture, "\n")), string(written))
}

func TestGenerateLevelFlagSelectsNumber(t *testing.T) {
	dir := t.TempDir()
	model := fakeModel(t, "testdata/level9.js")

	out, err := execute(t, "--levels-dir", dir, "--executable", model, "--level", "12", "--prior", "NOT,AND")
	require.NoError(t, err)

	assert.Contains(t, out, "Successfully generated level 12")
	assert.FileExists(t, filepath.Join(dir, "level12.js"))
}

func TestGenerateRejectedLevelExitsCleanly(t *testing.T) {
	dir := t.TempDir()
	model := fakeModel(t, "testdata/rejected.js")

	out, err := execute(t, "--levels-dir", dir, "--executable", model)
	require.NoError(t, err)

	assert.Contains(t, out, "Failed to generate level 9 (validation)")
	assert.NoFileExists(t, filepath.Join(dir, "level9.js"))
}

func TestGenerateMissingExecutableExitsCleanly(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--levels-dir", dir, "--executable", filepath.Join(dir, "no-such-runner"))
	require.NoError(t, err)

	assert.Contains(t, out, "Failed to generate level 9 (invocation)")
	assert.NoFileExists(t, filepath.Join(dir, "level9.js"))
}

func TestGenerateInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative timeout", args: []string{"--timeout", "-1s"}},
		{name: "malformed timeout", args: []string{"--timeout", "soon"}},
		{name: "zero level", args: []string{"--level", "0"}},
		{name: "unknown backend", args: []string{"--backend", "grpc"}},
		{name: "unknown storage", args: []string{"--storage", "s3"}},
		{name: "positional argument", args: []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	t.Run("accepted file", func(t *testing.T) {
		out, err := execute(t, "validate", "testdata/level9.js")
		require.NoError(t, err)
		assert.Contains(t, out, "testdata/level9.js: accepted")
		assert.Contains(t, out, "truth table entries: 4")
	})

	t.Run("rejected file", func(t *testing.T) {
		out, err := execute(t, "validate", "testdata/level9.js", "testdata/rejected.js")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 levels rejected")
		assert.Contains(t, out, "testdata/rejected.js: rejected")
	})

	t.Run("raw output without code", func(t *testing.T) {
		raw := filepath.Join(t.TempDir(), "answer.txt")
		require.NoError(t, os.WriteFile(raw, []byte("I cannot help with that."), 0o644))

		out, err := execute(t, "validate", "--raw", raw)
		require.Error(t, err)
		assert.Contains(t, out, "no code found")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "validate", "testdata/absent.js")
		assert.Error(t, err)
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := execute(t, "validate")
		assert.Error(t, err)
	})
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "list", "--levels-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no levels found")

	for _, name := range []string{"level3.js", "level1.js", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	out, err = execute(t, "list", "--levels-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "level1\nlevel3\n", out)
}

func TestWorkflowIDIsUnique(t *testing.T) {
	a, b := workflowID(9), workflowID(9)
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "level-generation-9-")
}
