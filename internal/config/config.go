// Package config loads the optional pyrun configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the file-backed configuration. Command-line flags win over
// every field here.
type Config struct {
	// Python is the default interpreter version, e.g. "3.12".
	Python string `yaml:"python"`

	// CacheDir overrides where distributions are cached.
	CacheDir string `yaml:"cache_dir"`

	// Rewrite toggles the source-normalization pass. Nil means on.
	Rewrite *bool `yaml:"rewrite"`
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "pyrun", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
