package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nnbench/distance"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nnbench dev")
}

func TestISA(t *testing.T) {
	out, err := execute(t, "isa")
	require.NoError(t, err)
	assert.Contains(t, out, "Available kernels: generic")
	assert.Contains(t, out, "Accelerated kernels: "+distance.Accelerated().Name())
}

func TestRun_Text(t *testing.T) {
	out, err := execute(t, "run", "-n", "2048", "-d", "32", "-f", "hamming64")
	require.NoError(t, err)

	assert.Contains(t, out, "Dimension of a vector (D): 32")
	assert.Contains(t, out, "# of dictionary vectors (N): 2048")
	assert.Contains(t, out, "[vector generation]")
	assert.Contains(t, out, "[full nearest neighbor search w/ generic]")
	assert.Contains(t, out, "results agree")
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, "run", "-n", "100", "-d", "16", "-o", "json", "--dump", "2")
	require.NoError(t, err)

	var report struct {
		Agree  bool `json:"agree"`
		Config struct {
			Family string `json:"family"`
		} `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Agree)
	assert.Equal(t, "l2", report.Config.Family)
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimension: 48\ndictionary_size: 10\nfamily: l1\n"), 0o600))

	out, err := execute(t, "run", "--config", path, "-n", "20", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Dimension of a vector (D): 48")
	assert.Contains(t, out, "# of dictionary vectors (N): 20")
	assert.Contains(t, out, "Family: l1")
	assert.NotContains(t, out, "[vector generation]")
}

func TestRun_InvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "-d", "20", "-n", "1")
	assert.Error(t, err)

	_, err = execute(t, "run", "-f", "cosine", "-n", "1")
	assert.ErrorIs(t, err, distance.ErrUnknownFamily)

	_, err = execute(t, "run", "-o", "xml", "-n", "1")
	assert.Error(t, err)

	_, err = execute(t, "run", "-n", "1024", "--memory-limit", "1KiB")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "-n", "500", "-d", "64", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "[verify swar vs generic, l1]  ok")
	assert.Contains(t, out, "0 differing distances")
}
