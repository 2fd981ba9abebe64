package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func executeInitIn(t *testing.T, dir string) error {
	t.Helper()

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	return cmd.Execute()
}

func TestInitCmd_WritesRunAndPathSettings(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, executeInitIn(t, dir))

	contents, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)

	var written map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &written))

	run, ok := written["run"].(map[string]any)
	require.True(t, ok, "run section missing from %s", contents)

	for _, key := range []string{"parallel", "flavors", "backup", "verify_command", "verify_timeout"} {
		assert.Contains(t, run, key)
	}

	assert.Contains(t, written, "paths")
	assert.Contains(t, written, "log")
}

func TestInitCmd_KeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, configFileName)
	existing := []byte("run:\n  parallel: 9\n")
	require.NoError(t, os.WriteFile(target, existing, 0o644))

	require.Error(t, executeInitIn(t, dir))

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, existing, contents)
}
