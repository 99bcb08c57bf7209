// Package config loads the ally configuration file and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 60 * time.Second

// ErrMissingAPIKey is returned when an AI command runs without a key
var ErrMissingAPIKey = errors.New("no Gemini API key configured (set GEMINI_API_KEY or llm.api_key in the config file)")

// Config holds all ally configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// LLMConfig configures the Gemini client.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultPath returns ~/.ally/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ally", "config.yaml")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		LLM: LLMConfig{
			Model:   "gemini-2.0-flash",
			Timeout: defaultTimeout.String(),
		},
		Storage: StorageConfig{
			Path: filepath.Join(home, ".ally", "ally.db"),
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override the file in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the file can hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	// GEMINI_API_KEY wins over GOOGLE_API_KEY
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("ALLY_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("ALLY_DB"); path != "" {
		c.Storage.Path = path
	}
}

// RequestTimeout returns the AI request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// RequireAPIKey returns the API key or ErrMissingAPIKey
func (c *Config) RequireAPIKey() (string, error) {
	if c.LLM.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	return c.LLM.APIKey, nil
}
