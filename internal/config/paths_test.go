package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()

	paths, err := NewPaths(base, "data", "/var/log/complaints")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, "/var/log/complaints", paths.LogsDir)
	assert.Equal(t, filepath.Join(base, "data", "a.xlsx"), paths.DataFile("a.xlsx"))
	assert.Equal(t, "/tmp/b.xlsx", paths.DataFile("/tmp/b.xlsx"))
	assert.Empty(t, paths.DataFile(""))
}

func TestNewPaths_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	paths, err := NewPaths("", "data", "logs")
	require.NoError(t, err)
	assert.Equal(t, wd, paths.BaseDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(base, "data", "nested/logs")
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())

	info, err := os.Stat(filepath.Join(base, "nested", "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sugestoes.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir), "directories are not input files")
	assert.False(t, FileExists(filepath.Join(dir, "missing.json")))
}
