// Package config holds the generator settings, read from a YAML file and
// overridden by the environment and command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all generator settings.
type Config struct {
	OutputDir string   `yaml:"output_dir"` // Directory receiving the fixtures.
	Extension string   `yaml:"extension"`  // Fixture file extension.
	Jobs      int      `yaml:"jobs"`       // Parallel builders, zero for no limit.
	Only      []string `yaml:"only"`       // Fixtures or mnemonics to generate.
	Manifest  bool     `yaml:"manifest"`   // Write manifest.yaml.
	Verbose   bool     `yaml:"verbose"`    // Debug logging.
}

// Environment overrides.
const (
	ENV_OUTPUT_DIR = "STARJCONF_OUTPUT_DIR"
	ENV_ONLY       = "STARJCONF_ONLY"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputDir: "tests",
		Extension: ".asm",
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = Default()
			cfg.applyEnvOverrides()
			err = nil
			return
		}
		err = fmt.Errorf("%w: %w", ErrConfigRead, err)
		return
	}

	cfg, err = Parse(bytes.NewReader(data))
	if err != nil {
		return
	}
	cfg.applyEnvOverrides()
	return
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (cfg *Config, err error) {
	cfg = Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		cfg = nil
		err = fmt.Errorf("%w: %w", ErrConfigParse, err)
		return
	}

	return
}

// applyEnvOverrides applies environment variable overrides.
func (cfg *Config) applyEnvOverrides() {
	if dir := os.Getenv(ENV_OUTPUT_DIR); dir != "" {
		cfg.OutputDir = dir
	}
	if only := os.Getenv(ENV_ONLY); only != "" {
		cfg.Only = strings.Split(only, ",")
	}
}

// Validate checks the settings.
func (cfg *Config) Validate() (err error) {
	switch {
	case len(cfg.OutputDir) == 0:
		err = ErrOutputDirEmpty
	case !strings.HasPrefix(cfg.Extension, "."):
		err = ErrExtension(cfg.Extension)
	case strings.ContainsAny(cfg.Extension, `/\`):
		err = ErrExtension(cfg.Extension)
	case cfg.Jobs < 0:
		err = ErrJobs(cfg.Jobs)
	}
	return
}

// Marshal renders the settings as YAML.
func (cfg *Config) Marshal() (data []byte, err error) {
	return yaml.Marshal(cfg)
}
