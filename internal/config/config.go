// Package config reads the .gotox.yaml or .gotox.toml file that sets defaults for
// the command line tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gotox/internal/pipeline"
	"gotox/internal/transform"
)

// Output formats understood by the driver.
const (
	FormatJSON   = "json"
	FormatC      = "c"
	FormatSymtab = "symtab"
)

// Formats lists the output formats.
func Formats() []string {
	return []string{FormatC, FormatJSON, FormatSymtab}
}

// FileNames are searched in order by Find.
var FileNames = []string{".gotox.yaml", ".gotox.yml", ".gotox.toml"}

// Config holds the settings a configuration file may carry. Zero fields are
// filled from Default.
type Config struct {
	Mode         string `yaml:"mode" toml:"mode"`
	Format       string `yaml:"format" toml:"format"`
	NondetPrefix string `yaml:"nondet_prefix" toml:"nondet_prefix"`
	Verbosity    int    `yaml:"verbosity" toml:"verbosity"`
	CheckTypes   bool   `yaml:"check_types" toml:"check_types"`
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Mode:         string(pipeline.ModeC),
		Format:       FormatC,
		NondetPrefix: transform.DefaultNondetPrefix,
	}
}

// Load reads the file at path. The extension picks the decoder: .toml files are
// TOML, anything else YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for a configuration file in dir. It returns the defaults and an empty
// path when there is none.
func Find(dir string) (Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		return cfg, path, err
	}
	return Default(), "", nil
}

// Save writes cfg to path in the format its extension names.
func Save(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) fill() {
	def := Default()
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.NondetPrefix == "" {
		c.NondetPrefix = def.NondetPrefix
	}
}

// Validate checks the mode and format names.
func (c Config) Validate() error {
	if _, err := pipeline.ParseMode(c.Mode); err != nil {
		return err
	}
	for _, f := range Formats() {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (want one of %s)", c.Format, strings.Join(Formats(), ", "))
}

// Options returns the pipeline options the settings describe.
func (c Config) Options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	if c.NondetPrefix != "" {
		opts.NondetPrefix = c.NondetPrefix
	}
	opts.CheckTypes = c.CheckTypes
	return opts
}
