// Package config loads and validates export262 configuration from
// YAML, providing defaults that match the jstest tree layout.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the
// working directory when --config is not given.
const DefaultConfigFile = ".export262.yaml"

// Duration wraps time.Duration so YAML values like "30s" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the top-level export262 configuration.
type Config struct {
	Export ExportConfig `yaml:"export"`
}

// ExportConfig controls tree export behavior.
type ExportConfig struct {
	// SupportFiles lists harness files that must never be exported.
	// Matched by base name anywhere in the tree.
	SupportFiles []string `yaml:"support_files"`

	// Include, when non-empty, restricts the export to files whose
	// tree-relative path matches at least one pattern.
	Include []string `yaml:"include"`

	// Exclude drops files whose tree-relative path matches any
	// pattern. Applied after Include.
	Exclude []string `yaml:"exclude"`

	// WalkTimeout bounds the tree walk. Zero means no timeout.
	WalkTimeout Duration `yaml:"walk_timeout"`
}

// DefaultConfig returns the configuration used when no config file
// is present. The support file set is the jstest harness list from
// the tree's README. No include or exclude patterns apply by
// default; everything that is not a support file gets exported.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			SupportFiles: []string{
				"browser.js",
				"shell.js",
				"template.js",
				"user.js",
				"js-test-driver-begin.js",
				"js-test-driver-end.js",
			},
		},
	}
}

// Load reads a YAML config file from path. Fields absent from the
// file keep their DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// IsSupportFile reports whether name (a base file name) is one of
// the harness support files excluded from export.
func (c *Config) IsSupportFile(name string) bool {
	for _, s := range c.Export.SupportFiles {
		if name == s {
			return true
		}
	}
	return false
}
