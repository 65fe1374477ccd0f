package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/puretable/internal/logging"
)

// projectDirName is the name of both the user and the project config directory.
const projectDirName = ".puretable"

// ResolveProjectDir determines the project-local .puretable directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. PURETABLE_PROJECT_DIR env var
//  3. a walk up from startDir looking for .puretable/config.yaml
//
// Returns an absolute path, or "" if no project is found. Read-only.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	return findProjectDir(ctx, startDir)
}

// findProjectDir walks from startDir to the filesystem root and returns the
// first .puretable directory holding a config file. The user config
// directory is skipped so that it is never applied twice.
func findProjectDir(ctx context.Context, startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := toAbsPath(ctx, startDir)
	userDir, _ := GetConfigDir()

	for {
		candidate := filepath.Join(dir, projectDirName)
		if candidate != userDir {
			if _, err := os.Stat(filepath.Join(candidate, configFileName)); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading the user config then merging
// the project-local config on top. If projectDir is empty, or its config
// cannot be merged, it behaves like New.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using user config")
		return cfg
	}

	// Environment still beats the project file.
	merged.ApplyEnv(os.LookupEnv)
	return merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".puretable"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs := toAbsPath(ctx, dir)
	if filepath.Base(abs) == projectDirName {
		return abs
	}
	return filepath.Join(abs, projectDirName)
}

func toAbsPath(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		return dir
	}
	return abs
}

// ProjectConfigPath returns the config file inside a project directory.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, configFileName)
}
