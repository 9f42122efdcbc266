package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	_, err := ExpandPath("")
	assert.Error(t, err)

	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/data.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data.csv"), got)

	got, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = ExpandPath("~other/x")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "~other", filepath.Base(filepath.Dir(got)))
}

func TestExpandPathFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.csv")
	require.NoError(t, os.WriteFile(target, []byte("A\n"), 0o644))
	link := filepath.Join(dir, "link.csv")
	require.NoError(t, os.Symlink(target, link))

	got, err := ExpandPath(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Empty(t, path, "missing config file should yield empty path")

	dir := filepath.Join(home, ".config", AppName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: 1\n"), 0o644))

	path, err = GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	envPath, err := GetDefaultEnvPath()
	require.NoError(t, err)
	assert.Empty(t, envPath)
}
