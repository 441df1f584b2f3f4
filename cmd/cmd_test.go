package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PHONIX_DB", filepath.Join(dir, "data", "phonix.db"))
	t.Setenv("PHONIX_VOCAB", "")
	t.Setenv("PHONIX_LOG_LEVEL", "error")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
}

// execute runs the root command. Flag values persist between runs, so
// callers pass every flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_PracticeFlow(t *testing.T) {
	setupCLI(t)

	out := mustExecute(t, "phrases", "add", "Pat the cat", "-p", "p æ t ð ə k æ t", "-c", "informal")
	assert.Contains(t, out, "Added")

	out = mustExecute(t, "phrases", "add", "Pat the cat", "-p", "p æ t ð ə k æ t", "-c", "informal")
	assert.Contains(t, out, "already in catalogue")

	out = mustExecute(t, "phrases", "count")
	assert.Contains(t, out, "informal     1")
	assert.Contains(t, out, "total        1")

	verdicts := filepath.Join(t.TempDir(), "verdicts.json")
	require.NoError(t, os.WriteFile(verdicts, []byte(`[
		{"type": "match", "target": "p", "actual": "p", "score": 0.9},
		{"type": "delete", "target": "t", "score": 0}
	]`), 0o644))

	out = mustExecute(t, "ingest", verdicts)
	assert.Contains(t, out, "Observed 1 phonemes, skipped 1")
	assert.Contains(t, out, "0.700")

	out = mustExecute(t, "stats", "--by", "score", "--limit", "3")
	assert.Contains(t, out, "1 batches over 1 sessions")
	assert.Contains(t, out, "1 informal")

	out = mustExecute(t, "queue", "fill", "--strategy", "urgency")
	assert.Contains(t, out, "Pat the cat")

	out = mustExecute(t, "next", "-n", "1", "--strategy", "")
	assert.Contains(t, out, "Pat the cat")

	_, err := execute(t, "reset", "--yes=false")
	assert.Error(t, err)

	out = mustExecute(t, "reset", "--yes")
	assert.Contains(t, out, "Learner data reset.")

	out = mustExecute(t, "stats", "--by", "urgency", "--limit", "0")
	assert.Contains(t, out, "0 batches")
}

func TestCLI_NextWithoutPhrases(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "next", "-n", "1", "--strategy", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no practice material")
}

func TestCLI_IngestRejectsInvalidPayload(t *testing.T) {
	setupCLI(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"type": "shout", "score": 1}]`), 0o644))

	_, err := execute(t, "ingest", bad)
	assert.Error(t, err)
}

func TestCLI_UnknownStrategy(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "queue", "fill", "--strategy", "loudest")
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	setupCLI(t)

	out := mustExecute(t, "version")
	assert.Contains(t, out, "phonix (devel)")
}
