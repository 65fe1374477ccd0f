package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvHome, "/custom/puretable")
		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/custom/puretable", dir)
	})

	t.Run("home default", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvHome, "")
		t.Setenv("HOME", home)
		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".puretable"), dir)
	})
}

func TestSetGlobalConfig(t *testing.T) {
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := Default()
	cfg.View.PageSize = 42
	SetGlobalConfig(cfg)
	assert.Same(t, cfg, GetGlobalConfig())
	assert.Equal(t, cfg.Logging, GetLoggingConfig())

	// InitGlobalConfig keeps an installed config.
	InitGlobalConfig()
	assert.Equal(t, 42, GetGlobalConfig().View.PageSize)

	SetGlobalConfig(nil)
	t.Setenv(EnvHome, t.TempDir())
	assert.Equal(t, DefaultPageSize, GetGlobalConfig().View.PageSize)
}

func TestEnsureLogDir(t *testing.T) {
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := Default()
	SetGlobalConfig(cfg)
	require.NoError(t, EnsureLogDir())

	logDir := filepath.Join(t.TempDir(), "nested", "logs")
	cfg.Logging.File = filepath.Join(logDir, "puretable.log")
	require.NoError(t, EnsureLogDir())

	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureLogDir_Error(t *testing.T) {
	t.Cleanup(ResetGlobalConfigForTest)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := Default()
	cfg.Logging.File = filepath.Join(blocker, "logs", "puretable.log")
	SetGlobalConfig(cfg)

	assert.Error(t, EnsureLogDir())
}
