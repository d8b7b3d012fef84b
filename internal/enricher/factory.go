package enricher

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/dirdocs/pkg/types"
)

// Environment variables consulted when configuration leaves fields empty
const (
	EnvProvider     = "DIRDOCS_PROVIDER"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvOpenAIBase   = "OPENAI_BASE_URL"
	EnvOllamaHost   = "OLLAMA_HOST"
)

// Config holds enricher configuration
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	CacheSize int
	Template  *PromptTemplate
	Retry     RetryConfig
}

// New creates an enricher with explicit configuration. Empty fields
// fall back to environment variables, then defaults.
func New(cfg Config) (Enricher, error) {
	cache := NewCache(cfg.CacheSize)

	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = DetectProvider()
	}

	switch provider {
	case ProviderOpenAI:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = os.Getenv(EnvOpenAIBase)
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, baseURL, cfg.Template, cfg.Retry, cache)
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = os.Getenv(EnvOllamaHost)
		}
		return NewOllamaProvider(cfg.Model, baseURL, cfg.Template, cfg.Retry, cache)
	case ProviderLocal:
		return NewLocalProvider(cache)
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", types.ErrNoProvider, cfg.Provider)
	}
}

// DetectProvider returns the provider that would be used based on the
// current environment: explicit selection, then an OpenAI key, then an
// Ollama host, then the offline fallback.
func DetectProvider() string {
	if provider := os.Getenv(EnvProvider); provider != "" {
		return strings.ToLower(provider)
	}
	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}
	if os.Getenv(EnvOllamaHost) != "" {
		return ProviderOllama
	}
	return ProviderLocal
}
