package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Config - User Configuration File
// =============================================================================

// Config holds user preferences loaded from the TOML config file.
// All fields are optional; command-line flags take precedence.
type Config struct {
	// DefaultFormat is the output format used when --format is not given.
	DefaultFormat string `toml:"default_format"`

	// Rankdir is the default Graphviz layout direction for DOT output.
	Rankdir string `toml:"rankdir"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// Serve holds defaults for the serve command.
	Serve ServeConfig `toml:"serve"`
}

// ServeConfig holds defaults for the HTTP server.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	Store     string `toml:"store"` // "memory" or "mongo"
	MongoURI  string `toml:"mongo_uri"`
	MongoDB   string `toml:"mongo_db"`
	Cache     string `toml:"cache"` // "file", "redis", or "none"
	RedisAddr string `toml:"redis_addr"`
}

// configPath returns the path of the user config file (~/.config/debruijn/config.toml).
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// LoadConfig reads a TOML config from path. A missing file is not an
// error and yields an empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the config from the standard location.
// The returned config is always usable, even when an error is returned.
func LoadDefaultConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadConfig(path)
}
