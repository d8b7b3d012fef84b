package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/dirdocs/internal/enricher"
	"github.com/dshills/dirdocs/internal/generator"
)

// Default file locations under the user config directory
const (
	ConfigDirName      = ".dirdocs"
	ConfigFileName     = "config.yaml"
	TemplateFileName   = "prompt.yaml"
	DefaultConcurrency = 4
	MaxFileBytes       = 2 * 1024 * 1024
)

// Config represents the complete dirdocs configuration
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Generate GenerateConfig `yaml:"generate"`
	Retry    RetryConfig    `yaml:"retry"`
}

// ProviderConfig configures the enrichment backend
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// GenerateConfig configures a generation run
type GenerateConfig struct {
	Concurrency  int      `yaml:"concurrency"`
	TokenBudget  int      `yaml:"token_budget"`
	MaxFileBytes int64    `yaml:"max_file_bytes"`
	MaxChunks    int      `yaml:"max_chunks_per_file"`
	Ignore       []string `yaml:"ignore"`
	CacheSize    int      `yaml:"cache_size"`
}

// RetryConfig configures backoff behavior for provider calls
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMs int `yaml:"base_delay_ms"`
	MaxDelayMs  int `yaml:"max_delay_ms"`
	MaxJitterMs int `yaml:"max_jitter_ms"`
}

// Default returns the configuration used when no file is installed.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Dir returns the dirdocs configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// TemplatePath returns the default prompt template location.
func TemplatePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TemplateFileName), nil
}

// Load reads and parses the configuration file. A missing file is not
// an error; defaults apply so the tool works with zero setup.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.expandEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads the config from the default location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// expandEnv expands environment variables in string fields
func (c *Config) expandEnv() {
	c.Provider.Name = os.ExpandEnv(c.Provider.Name)
	c.Provider.Model = os.ExpandEnv(c.Provider.Model)
	c.Provider.BaseURL = os.ExpandEnv(c.Provider.BaseURL)
	c.Provider.APIKey = os.ExpandEnv(c.Provider.APIKey)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Generate.Concurrency <= 0 {
		c.Generate.Concurrency = DefaultConcurrency
	}
	if c.Generate.MaxFileBytes <= 0 {
		c.Generate.MaxFileBytes = MaxFileBytes
	}
	if c.Generate.MaxChunks == 0 {
		c.Generate.MaxChunks = generator.DefaultMaxChunks
	}
	if c.Generate.CacheSize <= 0 {
		c.Generate.CacheSize = enricher.DefaultCacheSize
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = enricher.MaxAttempts
	}
	if c.Retry.BaseDelayMs <= 0 {
		c.Retry.BaseDelayMs = enricher.BaseBackoffMs
	}
	if c.Retry.MaxDelayMs <= 0 {
		c.Retry.MaxDelayMs = enricher.MaxBackoffMs
	}
	if c.Retry.MaxJitterMs <= 0 {
		c.Retry.MaxJitterMs = enricher.MaxJitterMs
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case "", enricher.ProviderOpenAI, enricher.ProviderOllama, enricher.ProviderLocal:
		// valid; empty means auto-detect
	default:
		return fmt.Errorf("invalid provider.name: %s (must be openai, ollama, or local)", c.Provider.Name)
	}
	if c.Generate.Concurrency < 1 {
		return fmt.Errorf("generate.concurrency must be at least 1")
	}
	if c.Generate.TokenBudget < 0 {
		return fmt.Errorf("generate.token_budget must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	return nil
}
