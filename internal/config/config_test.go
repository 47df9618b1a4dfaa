package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Exec.Workers)
	assert.Equal(t, 64, cfg.Exec.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.Exec.DefaultTimeout)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FILEDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("EXEC_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Exec.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filedeck.toml")
	content := `
[exec]
workers = 2
queue_size = 16

[logging]
level = "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("FILEDECK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Exec.Workers)
	assert.Equal(t, 16, cfg.Exec.QueueSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, "8090", cfg.Server.Port)
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filedeck.toml")
	require.NoError(t, os.WriteFile(path, []byte("[exec]\nworkers = 2\n"), 0o644))
	t.Setenv("FILEDECK_CONFIG", path)
	t.Setenv("EXEC_WORKERS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Exec.Workers)
}

func TestStorePathTildeExpansion(t *testing.T) {
	t.Setenv("FILEDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("STORE_PATH", "~/deck.json")

	cfg, err := Load()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "deck.json"), cfg.Store.Path)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("FILEDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("EXEC_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}
