// Package config loads the optional dalethls.yaml file. A missing file is not
// an error: the wrapper runs with defaults so that a bare `dalethls` works on
// a machine with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/daleth-lang/dalethls/internal/toolchain"
)

// Config holds the wrapper settings.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cargo  CargoConfig  `yaml:"cargo"`
}

// ServerConfig describes the managed language server.
type ServerConfig struct {
	// Binary is the executable name resolved on the search path.
	Binary string `yaml:"binary"`
	// Version optionally pins the crate version used by install.
	Version string `yaml:"version"`
}

// CargoConfig overrides toolchain discovery.
type CargoConfig struct {
	// Home overrides $CARGO_HOME for the well-known bin directory lookup.
	Home string `yaml:"home"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Binary: toolchain.ServerBinary},
	}
}

// DefaultPath returns the conventional location of the config file inside the
// user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dalethls", "dalethls.yaml")
}

// Load reads the config file at path. An empty path means the default
// location; a missing file at either yields Default(). Unknown fields are
// rejected and string values are environment-expanded.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}

	cfg.Server.Binary = os.ExpandEnv(cfg.Server.Binary)
	cfg.Server.Version = os.ExpandEnv(cfg.Server.Version)
	cfg.Cargo.Home = os.ExpandEnv(cfg.Cargo.Home)
	if cfg.Server.Binary == "" {
		cfg.Server.Binary = toolchain.ServerBinary
	}
	return cfg, nil
}

// Apply exports side effects of the configuration, currently only the cargo
// home override consumed by toolchain discovery.
func (c *Config) Apply() {
	if c.Cargo.Home != "" {
		os.Setenv("CARGO_HOME", c.Cargo.Home)
	}
}
