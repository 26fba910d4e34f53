package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store defines how the configuration is persisted.
// Abstracted so commands can be tested without touching $HOME.
type Store interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	Path() string
}

// FileStore implements Store with a YAML file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the given path. An empty path means
// DefaultPath().
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the config file location.
func (fs *FileStore) Path() string { return fs.path }

// Load reads and validates the config file. A missing file is created
// from DefaultConfig first, so the first run leaves an editable file
// behind.
func (fs *FileStore) Load() (*Config, error) {
	if _, err := os.Stat(fs.path); os.IsNotExist(err) {
		if err := fs.Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", fs.path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.path, err)
	}
	return cfg, nil
}

// Save validates cfg and writes it as YAML, creating parent directories.
func (fs *FileStore) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(fs.path, data, 0o644)
}
