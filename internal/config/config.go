// Package config loads the optional uiports configuration file.
//
// The file is JSONC (JSON with comments and trailing commas), the same
// flavour editor settings files use:
//
//	{
//	  // Where port_mapping.yml and the per-app asset folders live.
//	  "dataRoot": "/var/lib/uiports",
//	  "bindHost": "127.0.0.1",
//	  "docker": { "enabled": true },
//	}
//
// Every field is optional. Unset fields fall back to Default().
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/uiports/internal/model"
	"github.com/shinji-kodama/uiports/internal/paths"
	"github.com/shinji-kodama/uiports/internal/port"
)

// FileName is the name of the configuration file inside the user's
// configuration directory.
const FileName = "config.jsonc"

// Config holds the settings of the uiports CLI.
type Config struct {
	// DataRoot overrides the directory resolved by paths.DataDirectoryFor.
	DataRoot string `json:"dataRoot,omitempty"`

	// Scope is the data scope passed to paths.DataDirectoryFor when
	// DataRoot is empty.
	Scope string `json:"scope,omitempty"`

	// BindHost is the address ports are probed and allocated on.
	BindHost string `json:"bindHost,omitempty"`

	// Docker controls whether published container ports are consulted
	// when reporting port state.
	Docker DockerConfig `json:"docker"`
}

// DockerConfig holds the Docker-related settings.
type DockerConfig struct {
	// Enabled turns the Docker lookup on. A nil value means true.
	Enabled *bool `json:"enabled,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scope:    paths.UIsScope,
		BindHost: port.DefaultHost,
	}
}

// DefaultPath returns <user config dir>/uiports/config.jsonc.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, paths.AppName, FileName), nil
}

// Load reads the configuration file at path.
//
// When explicit is false a missing file is not an error and Default() is
// returned; this is how the default location is treated. An explicitly
// requested file must exist.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// Parse decodes JSONC configuration bytes, applies defaults and validates
// the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	// Strip comments and trailing commas, then decode over the defaults so
	// that absent keys keep their default values.
	cleanJSON := jsonc.ToJSON(data)
	if err := json.Unmarshal(cleanJSON, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Scope == "" {
		cfg.Scope = paths.UIsScope
	}
	if cfg.BindHost == "" {
		cfg.BindHost = port.DefaultHost
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DataRoot != "" && !filepath.IsAbs(c.DataRoot) {
		return fmt.Errorf("dataRoot must be an absolute path, got %q", c.DataRoot)
	}
	if net.ParseIP(c.BindHost) == nil && c.BindHost != "localhost" {
		return fmt.Errorf("bindHost must be an IP address or \"localhost\", got %q", c.BindHost)
	}
	return nil
}

// DockerEnabled reports whether the Docker lookup is on.
func (c *Config) DockerEnabled() bool {
	return c.Docker.Enabled == nil || *c.Docker.Enabled
}

// ResolveDataRoot returns DataRoot if set, otherwise the directory for
// Scope from paths.DataDirectoryFor.
func (c *Config) ResolveDataRoot() (string, error) {
	if c.DataRoot != "" {
		return c.DataRoot, nil
	}
	return paths.DataDirectoryFor(c.Scope)
}
