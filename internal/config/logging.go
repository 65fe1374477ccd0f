package config

import (
	"errors"
	"fmt"

	"github.com/rshade/puretable/internal/logging"
)

// ErrInvalidLogFormat is returned for log formats other than json or console.
var ErrInvalidLogFormat = errors.New("logging.format must be json or console")

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Validate checks the logging format.
func (lc LoggingConfig) Validate() error {
	switch lc.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, lc.Format)
	}
}

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global
// configuration. Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}
