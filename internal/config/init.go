package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/dirdocs/internal/enricher"
)

const defaultConfigYAML = `# dirdocs configuration
provider:
  # openai, ollama, or local; empty auto-detects from the environment
  name: ""
  model: ""
  base_url: ""
  # Prefer the OPENAI_API_KEY environment variable over this field
  api_key: ""

generate:
  concurrency: 4
  token_budget: 1000
  max_file_bytes: 2097152
  # Chunks of a large file sent to the model; negative keeps every chunk
  max_chunks_per_file: 3
  cache_size: 10000
  ignore: []

retry:
  max_attempts: 5
  base_delay_ms: 300
  max_delay_ms: 8000
  max_jitter_ms: 250
`

// Init installs the default config and prompt template into the user
// config directory. Existing files are left alone so edits survive.
// It returns the paths written, which may be empty when nothing was.
func Init() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	var written []string
	targets := []struct {
		name    string
		content string
	}{
		{ConfigFileName, defaultConfigYAML},
		{TemplateFileName, enricher.DefaultPromptTemplate},
	}
	for _, tgt := range targets {
		path := filepath.Join(dir, tgt.name)
		ok, err := writeIfMissing(path, []byte(tgt.content))
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, path)
		}
	}
	return written, nil
}

// writeIfMissing atomically creates path with content unless it exists.
func writeIfMissing(path string, content []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("install %s: %w", path, err)
	}
	return true, nil
}

// Enricher builds the enricher configuration from this config, loading
// the installed prompt template when present.
func (c *Config) Enricher() enricher.Config {
	cfg := enricher.Config{
		Provider:  c.Provider.Name,
		APIKey:    c.Provider.APIKey,
		Model:     c.Provider.Model,
		BaseURL:   c.Provider.BaseURL,
		CacheSize: c.Generate.CacheSize,
		Retry: enricher.RetryConfig{
			MaxAttempts: c.Retry.MaxAttempts,
			BaseDelay:   time.Duration(c.Retry.BaseDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(c.Retry.MaxDelayMs) * time.Millisecond,
			Multiplier:  enricher.BackoffMultiplier,
			MaxJitter:   time.Duration(c.Retry.MaxJitterMs) * time.Millisecond,
		},
	}

	if path, err := TemplatePath(); err == nil {
		if tpl, err := enricher.LoadPromptTemplate(path); err == nil {
			cfg.Template = tpl
		}
	}
	return cfg
}
