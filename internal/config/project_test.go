package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/puretable/internal/config"
)

func writeProjectConfig(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, ".puretable")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, t.TempDir())

	got := config.ResolveProjectDir(context.Background(), flagDir, "")
	assert.Equal(t, filepath.Join(flagDir, ".puretable"), got)
}

func TestResolveProjectDir_EnvVar(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "")
	assert.Equal(t, filepath.Join(envDir, ".puretable"), got)
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	dir := filepath.Join(t.TempDir(), ".puretable")

	got := config.ResolveProjectDir(context.Background(), dir, "")
	assert.Equal(t, dir, got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
	root := t.TempDir()
	projectDir := writeProjectConfig(t, root, "view:\n  page_size: 20\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	got := config.ResolveProjectDir(context.Background(), "", nested)
	assert.Equal(t, projectDir, got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")

	got := config.ResolveProjectDir(context.Background(), "", t.TempDir())
	assert.Empty(t, got)
}

func TestNewWithProjectDir(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	t.Run("empty project dir uses defaults", func(t *testing.T) {
		cfg := config.NewWithProjectDir(context.Background(), "")
		assert.Equal(t, config.DefaultPageSize, cfg.View.PageSize)
	})

	t.Run("project config applied", func(t *testing.T) {
		dir := writeProjectConfig(t, t.TempDir(), "view:\n  page_size: 20\n")
		cfg := config.NewWithProjectDir(context.Background(), dir)
		assert.Equal(t, 20, cfg.View.PageSize)
		assert.Equal(t, config.DefaultWindowSize, cfg.View.WindowSize)
	})

	t.Run("environment beats project config", func(t *testing.T) {
		t.Setenv(config.EnvPageSize, "7")
		dir := writeProjectConfig(t, t.TempDir(), "view:\n  page_size: 20\n")
		cfg := config.NewWithProjectDir(context.Background(), dir)
		assert.Equal(t, 7, cfg.View.PageSize)
	})

	t.Run("malformed project config falls back", func(t *testing.T) {
		dir := writeProjectConfig(t, t.TempDir(), "view: [broken")
		cfg := config.NewWithProjectDir(context.Background(), dir)
		assert.Equal(t, config.DefaultPageSize, cfg.View.PageSize)
	})
}
