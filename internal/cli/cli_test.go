package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dirdocs/internal/cache"
	"github.com/dshills/dirdocs/internal/enricher"
)

func testEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(enricher.EnvProvider, "local")
	t.Setenv(enricher.EnvOpenAIAPIKey, "")
	t.Setenv(enricher.EnvOllamaHost, "")
}

func seedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "util.go"), []byte("package lib\n"), 0o644))
	return root
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand("test")
	assert.Equal(t, "dirdocs", root.Use)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "status", "init", "serve"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestGenerateCommand(t *testing.T) {
	testEnv(t)
	root := seedTree(t)

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"generate", root, "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	tree, err := cache.Load(cache.PathIn(root))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.FileCount())
}

func TestGenerateCommand_Force(t *testing.T) {
	testEnv(t)
	root := seedTree(t)

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"generate", root, "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCommand("test")
	cmd.SetArgs([]string{"generate", root, "--force", "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	tree, err := cache.Load(cache.PathIn(root))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.FileCount())
}

func TestStatusCommand(t *testing.T) {
	testEnv(t)
	root := seedTree(t)

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"status", root, "--json"})
	require.NoError(t, cmd.Execute())
}

func TestInitCommand(t *testing.T) {
	testEnv(t)

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".dirdocs", "config.yaml"))
	assert.FileExists(t, filepath.Join(home, ".dirdocs", "prompt.yaml"))
}

func TestGenerateCommand_MissingPath(t *testing.T) {
	testEnv(t)

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"generate", filepath.Join(t.TempDir(), "nope"), "--log-level", "error"})
	assert.Error(t, cmd.Execute())
}
