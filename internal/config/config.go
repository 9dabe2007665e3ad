// Package config handles the configuration and data directories and file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskcli"

	// DataFileName is the task list filename inside the data directory.
	DataFileName = "tasks.json"

	// ConfigFileName is the optional settings file inside the config directory.
	ConfigFileName = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataFile is the path of the task list file.
	DataFile string

	// PushList is the remote list name used by push when --list is not given.
	// Empty means the remote default list.
	PushList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	DataFile string `toml:"data_file"`
	Push     struct {
		List string `toml:"list"`
	} `toml:"push"`
}

// New creates a Config for the given config directory and data file overrides.
// Empty overrides fall back to config.toml (when present) and then the platform
// defaults.
func New(configDir, dataFile string) (*Config, error) {
	cfg := Defaults(configDir, dataFile)

	var fc fileConfig
	if err := loadConfigFile(&fc, cfg.ConfigFilePath()); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	cfg.PushList = fc.Push.List

	if dataFile == "" && fc.DataFile != "" {
		cfg.DataFile = expandHome(fc.DataFile)
	}

	return cfg, nil
}

// Defaults creates a Config from the overrides and platform defaults alone,
// without reading config.toml.
func Defaults(configDir, dataFile string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if dataFile == "" {
		dataFile = filepath.Join(DefaultDataDir(), DataFileName)
	}
	return &Config{Dir: dir, DataFile: dataFile}
}

// loadConfigFile decodes the TOML file at path into fc. A missing file is not an error.
func loadConfigFile(fc *fileConfig, path string) error {
	_, err := toml.DecodeFile(path, fc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the per-user local data directory.
//
//	Linux/BSD: $XDG_DATA_HOME/taskcli, else ~/.local/share/taskcli
//	macOS:     ~/Library/Application Support/taskcli
//	Windows:   %LOCALAPPDATA%\taskcli
func DefaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, AppName)
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", AppName)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", AppName)
		}
	}
	return AppName
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ConfigFilePath returns the path to config.toml.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Dir, ConfigFileName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
