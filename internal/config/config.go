// Package config loads and validates puretable configuration.
//
// Values are resolved in this order, later sources winning:
//   - built-in defaults
//   - the user config file ($PURETABLE_HOME/config.yaml, default ~/.puretable/config.yaml)
//   - a project config file (.puretable/config.yaml found by walking up from the working directory)
//   - PURETABLE_* environment variables
//   - CLI flags, applied by the cli package
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	CurrentSchemaVersion  = "1.0.0"
	SupportedSchemaRange  = "^1"
	DefaultPageSize       = 10
	MaxPageSize           = 1000
	DefaultWindowSize     = 5
	DefaultLocale         = "und"
	DefaultOutputFormat   = "table"
	DefaultServerHost     = "127.0.0.1"
	DefaultServerPort     = 8080
	DefaultCacheEntries   = 256
	DefaultCacheTTL       = 10 * time.Minute
	DefaultMaxUploadBytes = 32 << 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	configFileName        = "config.yaml"
	maxPort               = 65535
)

// Environment variables consulted by ApplyEnv.
const (
	EnvHome       = "PURETABLE_HOME"
	EnvProjectDir = "PURETABLE_PROJECT_DIR"
	EnvPageSize   = "PURETABLE_PAGE_SIZE"
	EnvLocale     = "PURETABLE_LOCALE"
	EnvOutput     = "PURETABLE_OUTPUT"
	EnvHost       = "PURETABLE_HOST"
	EnvPort       = "PURETABLE_PORT"
	EnvLogLevel   = "PURETABLE_LOG_LEVEL"
	EnvLogFormat  = "PURETABLE_LOG_FORMAT"
	EnvLogFile    = "PURETABLE_LOG_FILE"
)

// Validation errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported config schema_version")
	ErrInvalidPageSize   = fmt.Errorf("view.page_size must be between 1 and %d", MaxPageSize)
	ErrInvalidWindowSize = errors.New("view.window_size must be >= 1")
	ErrInvalidFormat     = errors.New("output.default_format must be table, json or ndjson")
	ErrInvalidPort       = errors.New("server.port must be between 1 and 65535")
)

// Config is the full puretable configuration.
type Config struct {
	SchemaVersion string        `yaml:"schema_version" json:"schema_version"`
	View          ViewConfig    `yaml:"view" json:"view"`
	Output        OutputConfig  `yaml:"output" json:"output"`
	Server        ServerConfig  `yaml:"server" json:"server"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// ViewConfig controls the table view defaults.
type ViewConfig struct {
	PageSize     int           `yaml:"page_size" json:"page_size"`
	WindowSize   int           `yaml:"window_size" json:"window_size"`
	Locale       string        `yaml:"locale" json:"locale"`
	CacheEntries int           `yaml:"cache_entries" json:"cache_entries"`
	CacheTTL     time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// OutputConfig controls one-shot rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// ServerConfig controls the browser viewer.
type ServerConfig struct {
	Host           string `yaml:"host" json:"host"`
	Port           int    `yaml:"port" json:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" json:"max_upload_bytes"`
}

// Default returns a Config holding only built-in defaults.
func Default() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		View: ViewConfig{
			PageSize:     DefaultPageSize,
			WindowSize:   DefaultWindowSize,
			Locale:       DefaultLocale,
			CacheEntries: DefaultCacheEntries,
			CacheTTL:     DefaultCacheTTL,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Server: ServerConfig{
			Host:           DefaultServerHost,
			Port:           DefaultServerPort,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns defaults overlaid with the user config file, if present, and
// the environment. A malformed user config file is ignored.
func New() *Config {
	cfg := Default()
	if path, err := UserConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			_ = ShallowMergeYAML(cfg, path)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Load returns defaults overlaid with the file at path and the environment.
// Unlike New, a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overlays PURETABLE_* variables. Unparseable numbers are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvPageSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.View.PageSize = n
		}
	}
	if v, ok := lookupEnv(EnvLocale); ok && v != "" {
		c.View.Locale = v
	}
	if v, ok := lookupEnv(EnvOutput); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvHost); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookupEnv(EnvPort); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := validateSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}
	if c.View.PageSize < 1 || c.View.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.View.PageSize)
	}
	if c.View.WindowSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindowSize, c.View.WindowSize)
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	return c.Logging.Validate()
}

func validateSchemaVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchemaRange)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchemaRange)
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the path of the user config file.
func UserConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
