package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "ALLY_MODEL", "ALLY_DB"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "ally.db", filepath.Base(cfg.Storage.Path))

	_, err = cfg.RequireAPIKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"
	cfg.LLM.Timeout = "15s"
	cfg.Storage.Path = "/tmp/ally-test.db"
	cfg.Log.Verbose = true
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 15*time.Second, loaded.RequestTimeout())

	key, err := loaded.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file-key\n  model: from-file\n"), 0600))

	t.Setenv("GOOGLE_API_KEY", "google-key")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.LLM.APIKey)
	assert.Equal(t, "from-file", cfg.LLM.Model)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ALLY_MODEL", "gemini-2.5-pro")
	t.Setenv("ALLY_DB", "/data/ally.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, "/data/ally.db", cfg.Storage.Path)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "soon"
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	cfg.LLM.Timeout = "-5s"
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
}
