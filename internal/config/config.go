// Package config loads the optional dbmeta.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds server address and credentials for build-db and
// credential fallbacks for connection strings.
type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password,omitempty"`
	Charset  string `yaml:"charset"`
	Role     string `yaml:"role,omitempty"`
}

// DatabaseConfig holds the physical options of databases created by build-db.
type DatabaseConfig struct {
	File     string `yaml:"file"`
	PageSize int    `yaml:"page_size"`

	// ForcedWrites is a pointer so that an explicit false differs from unset.
	ForcedWrites *bool `yaml:"forced_writes"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Database   DatabaseConfig   `yaml:"database"`
	SplitMode  string           `yaml:"split_mode"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "dbmeta.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the configuration at path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. It returns zero when Timeout is empty.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
