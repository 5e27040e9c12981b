package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taskline-dev/taskline/internal/version"
)

// FileName is the config file looked up by LoadFromDir.
const FileName = ".taskline.yml"

// Config represents the .taskline.yml configuration file.
type Config struct {
	Extension      string    `yaml:"extension"`
	DefaultVersion string    `yaml:"default_version,omitempty"` // Used by init when no version is given
	Scripts        []string  `yaml:"scripts,omitempty"`         // Globs selecting scripts for batch commands
	Log            LogConfig `yaml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a .taskline.yml config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(string(data))
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse parses inline YAML config content.
func Parse(content string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for .taskline.yml in the given directory.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

func (c *Config) applyDefaults() {
	if c.Extension == "" {
		c.Extension = "tskln"
	}
	if len(c.Scripts) == 0 {
		c.Scripts = []string{"**." + c.Extension}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// validate checks that the config is valid.
func (c *Config) validate() error {
	if strings.ContainsAny(c.Extension, `./\`) {
		return fmt.Errorf("extension %q must not contain dots or path separators", c.Extension)
	}
	if c.DefaultVersion != "" {
		if _, err := version.Parse(c.DefaultVersion); err != nil {
			return fmt.Errorf("default_version: %w", err)
		}
	}
	for _, s := range c.Scripts {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("scripts must not contain empty patterns")
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// InitVersion returns the version init should use when none is given on the
// command line, or nil.
func (c *Config) InitVersion() *version.Version {
	if c.DefaultVersion == "" {
		return nil
	}
	v, err := version.Parse(c.DefaultVersion)
	if err != nil {
		return nil
	}
	return &v
}
