package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/puretable/internal/config"
	"github.com/rshade/puretable/internal/logging"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.View.PageSize)
	assert.Equal(t, 5, cfg.View.WindowSize)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"zero page size", func(c *config.Config) { c.View.PageSize = 0 }, config.ErrInvalidPageSize},
		{"huge page size", func(c *config.Config) { c.View.PageSize = 5000 }, config.ErrInvalidPageSize},
		{"zero window", func(c *config.Config) { c.View.WindowSize = 0 }, config.ErrInvalidWindowSize},
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, config.ErrInvalidFormat},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }, config.ErrInvalidPort},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "text" }, config.ErrInvalidLogFormat},
		{"future schema", func(c *config.Config) { c.SchemaVersion = "2.0.0" }, config.ErrUnsupportedSchema},
		{"garbage schema", func(c *config.Config) { c.SchemaVersion = "one" }, config.ErrUnsupportedSchema},
		{"minor schema bump", func(c *config.Config) { c.SchemaVersion = "1.4.0" }, nil},
		{"empty schema", func(c *config.Config) { c.SchemaVersion = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvPageSize:  "25",
		config.EnvPort:      "not-a-number",
		config.EnvLogLevel:  "debug",
		config.EnvOutput:    "ndjson",
		config.EnvLocale:    "de",
		config.EnvLogFormat: "json",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, 25, cfg.View.PageSize)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, "de", cfg.View.Locale)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	t.Setenv(config.EnvPageSize, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.View.PageSize = 42
	cfg.Server.Port = 9999
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.View.PageSize)
	assert.Equal(t, 9999, loaded.Server.Port)
	assert.Equal(t, cfg.View.CacheTTL, loaded.View.CacheTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	first := config.GetGlobalConfig()
	require.NotNil(t, first)
	assert.Same(t, first, config.GetGlobalConfig())

	replacement := config.Default()
	replacement.View.PageSize = 3
	config.SetGlobalConfig(replacement)
	assert.Equal(t, 3, config.GetGlobalConfig().View.PageSize)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)

	lc.File = "/tmp/puretable.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/puretable.log", got.File)
}
