package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/subtrack-dev/subtrack/internal/enrich"
	"github.com/subtrack-dev/subtrack/internal/recurring"
)

// Config represents the top-level subtrack.yaml configuration.
type Config struct {
	Categories       []enrich.CategoryRule `yaml:"categories"`
	VendorCategories map[string]string     `yaml:"vendor_categories,omitempty"`
	Enrich           enrich.Config         `yaml:"enrich"`
	Recurring        recurring.Config      `yaml:"recurring"`
	Git              GitConfig             `yaml:"git"`
	Log              LogConfig             `yaml:"log"`
}

// GitConfig controls git integration for the ledger directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Tables returns the category tables in the form the enricher consumes.
func (c *Config) Tables() enrich.Tables {
	return enrich.Tables{Categories: c.Categories}
}

// Load reads a subtrack.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in tables and tunables.
func Default() *Config {
	return &Config{
		Categories: enrich.DefaultTables().Categories,
		Enrich:     enrich.DefaultConfig(),
		Recurring:  recurring.DefaultConfig(),
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Subtrack",
			AuthorEmail: "ledger@subtrack.dev",
		},
		Log: LogConfig{Level: "info"},
	}
}
