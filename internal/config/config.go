package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/saltyorg/branchver/internal/ci"
	"github.com/saltyorg/branchver/internal/template"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".branchver.yml"

// Config represents the complete configuration for branchver.
type Config struct {
	IncludeMetadata *bool          `yaml:"include_metadata"` // Pointer to distinguish missing from false
	CommitLength    int            `yaml:"commit_length"`
	Generate        GenerateConfig `yaml:"generate"`
}

// GenerateConfig configures the generated Go constants file.
type GenerateConfig struct {
	Package string `yaml:"package"`
	Prefix  string `yaml:"prefix"`
	Output  string `yaml:"output"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when path is the
// default location and does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && path == DefaultPath && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.IncludeMetadata == nil {
		include := true
		c.IncludeMetadata = &include
	}
	if c.CommitLength == 0 {
		c.CommitLength = ci.DefaultCommitLength
	}
	if c.Generate.Package == "" {
		c.Generate.Package = "buildinfo"
	}
	if c.Generate.Output == "" {
		c.Generate.Output = "buildinfo/version_gen.go"
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.CommitLength < 1 || c.CommitLength > 40 {
		return fmt.Errorf("commit_length must be between 1 and 40, got %d", c.CommitLength)
	}
	// The blank identifier is not a valid package clause
	if !token.IsIdentifier(c.Generate.Package) || c.Generate.Package == "_" {
		return fmt.Errorf("generate.package is not a valid Go package name: %q", c.Generate.Package)
	}
	// Prefix is optional but must form exported identifiers when set
	if c.Generate.Prefix != "" {
		if !token.IsIdentifier(c.Generate.Prefix) {
			return fmt.Errorf("generate.prefix is not a valid Go identifier: %q", c.Generate.Prefix)
		}
		if !token.IsExported(template.Exported(c.Generate.Prefix)) {
			return fmt.Errorf("generate.prefix must start with a letter that has an upper case form: %q", c.Generate.Prefix)
		}
	}
	return nil
}

// IncludeCommitMetadata returns whether build metadata is appended.
func (c *Config) IncludeCommitMetadata() bool {
	return c.IncludeMetadata == nil || *c.IncludeMetadata
}
