package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "origin", s.Remote)
	assert.Equal(t, []string{"main", "master", "develop"}, s.BranchPriority)
	assert.Equal(t, "3.11.9", s.Python.RequiredVersion)
	assert.Equal(t, ".venv", s.Python.VenvDir)
	assert.Equal(t, "requirements.txt", s.Python.Manifest)
	assert.NotEmpty(t, s.UpstreamURL)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	l := NewSettingsLoaderAt(filepath.Join(t.TempDir(), SettingsFileName))

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	content := `
remote: upstream
branch_priority: [trunk]
python:
  required_version: "3.12.1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := NewSettingsLoaderAt(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "upstream", s.Remote)
	assert.Equal(t, []string{"trunk"}, s.BranchPriority)
	assert.Equal(t, "3.12.1", s.Python.RequiredVersion)
	// Unset fields keep their defaults.
	assert.Equal(t, ".venv", s.Python.VenvDir)
	assert.Equal(t, "requirements.txt", s.Python.Manifest)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REPOSYNC_REMOTE", "mirror")

	l := NewSettingsLoaderAt(filepath.Join(t.TempDir(), SettingsFileName))
	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "mirror", s.Remote)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed"), 0o644))

	_, err := NewSettingsLoaderAt(path).Load()
	assert.Error(t, err)
}

func TestEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFileName)
	l := NewSettingsLoaderAt(path)

	created, err := l.EnsureExists()
	require.NoError(t, err)
	assert.True(t, created)

	// Template must round-trip through the loader.
	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "origin", s.Remote)

	created, err = l.EnsureExists()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	l := NewSettingsLoaderAt(path)

	in := DefaultSettings()
	in.Remote = "upstream"
	require.NoError(t, l.Save(in))

	out, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "upstream", out.Remote)
}

func TestReposyncHomeEnvOverride(t *testing.T) {
	t.Setenv(ReposyncHomeEnv, "/tmp/reposync-home")

	home, err := ReposyncHome()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reposync-home", home)

	logs, err := LogsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/reposync-home", LogsSubdir), logs)
}
