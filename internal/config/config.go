package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the repository root.
const FileName = "teller.yaml"

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Account AccountConfig `yaml:"account"`
	Form    FormConfig    `yaml:"form"`
	Git     GitConfig     `yaml:"git"`
	Logging LoggingConfig `yaml:"logging"`
}

// AccountConfig names the account the ledger tracks.
type AccountConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // display only
}

// FormConfig controls the transaction form.
type FormConfig struct {
	Locale     string  `yaml:"locale"`      // BCP 47, e.g. "en" or "ar"
	ShakeScale float64 `yaml:"shake_scale"` // terminal cells per pulse offset unit
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // relative to the repository root
}

// Load reads a teller.yaml file from disk.
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

// Default returns a Config with sensible defaults for a new ledger.
func Default(accountName string) *Config {
	return &Config{
		Account: AccountConfig{
			Name:     accountName,
			Currency: "USD",
		},
		Form: FormConfig{
			Locale:     "en",
			ShakeScale: 0.5,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Teller",
			AuthorEmail: "teller@localhost",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "logs/teller.log",
		},
	}
}
