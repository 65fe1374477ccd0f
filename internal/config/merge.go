package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keySchemaVersion = "schema_version"
	keyView          = "view"
	keyOutput        = "output"
	keyServer        = "server"
	keyLogging       = "logging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Fields set in an overlay section replace the target's
// fields; absent sections and fields are left unchanged and unknown keys are
// ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = applySection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// applySection decodes node onto a copy of the section named key and
// stores the copy back, so a half-written section cannot leave target
// partially updated.
func applySection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keySchemaVersion:
		v := target.SchemaVersion
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.SchemaVersion = v
	case keyView:
		v := target.View
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.View = v
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyServer:
		v := target.Server
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	}
	return nil
}
