package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.Equal(t, "/api/v1", cfg.API.Prefix)
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "tasks.json"), cfg.SnapshotPath())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_config.yml")
	body := `
server:
  host: 0.0.0.0
  port: 8080
api:
  prefix: /api/v2
storage:
  data_dir: /tmp/todo-test
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/api/v2", cfg.API.Prefix)
	assert.Equal(t, "/tmp/todo-test", cfg.Storage.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TODO_PORT", "9999")
	t.Setenv("TODO_DATA_DIR", "/tmp/env-data")
	t.Setenv("TODO_CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/tmp/env-data", cfg.Storage.DataDir)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.Origins)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
