package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dirdocs/pkg/types"
)

func TestDetectProvider(t *testing.T) {
	t.Run("explicit selection wins", func(t *testing.T) {
		t.Setenv(EnvProvider, "OLLAMA")
		t.Setenv(EnvOpenAIAPIKey, "sk-test")
		assert.Equal(t, ProviderOllama, DetectProvider())
	})

	t.Run("openai key", func(t *testing.T) {
		t.Setenv(EnvProvider, "")
		t.Setenv(EnvOpenAIAPIKey, "sk-test")
		t.Setenv(EnvOllamaHost, "")
		assert.Equal(t, ProviderOpenAI, DetectProvider())
	})

	t.Run("ollama host", func(t *testing.T) {
		t.Setenv(EnvProvider, "")
		t.Setenv(EnvOpenAIAPIKey, "")
		t.Setenv(EnvOllamaHost, "http://localhost:11434")
		assert.Equal(t, ProviderOllama, DetectProvider())
	})

	t.Run("offline fallback", func(t *testing.T) {
		t.Setenv(EnvProvider, "")
		t.Setenv(EnvOpenAIAPIKey, "")
		t.Setenv(EnvOllamaHost, "")
		assert.Equal(t, ProviderLocal, DetectProvider())
	})
}

func TestNew(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		enr, err := New(Config{Provider: "local"})
		require.NoError(t, err)
		defer enr.Close()
		assert.Equal(t, ProviderLocal, enr.Provider())
	})

	t.Run("openai with key", func(t *testing.T) {
		enr, err := New(Config{Provider: "openai", APIKey: "sk-test"})
		require.NoError(t, err)
		defer enr.Close()
		assert.Equal(t, ProviderOpenAI, enr.Provider())
	})

	t.Run("openai without key", func(t *testing.T) {
		t.Setenv(EnvOpenAIAPIKey, "")
		_, err := New(Config{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("ollama", func(t *testing.T) {
		enr, err := New(Config{Provider: "ollama"})
		require.NoError(t, err)
		defer enr.Close()
		assert.Equal(t, ProviderOllama, enr.Provider())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(Config{Provider: "carrier-pigeon"})
		assert.Error(t, err)
	})

	t.Run("empty config auto-detects", func(t *testing.T) {
		t.Setenv(EnvProvider, "")
		t.Setenv(EnvOpenAIAPIKey, "")
		t.Setenv(EnvOllamaHost, "")
		enr, err := New(Config{})
		require.NoError(t, err)
		defer enr.Close()
		assert.Equal(t, ProviderLocal, enr.Provider())
	})
}

func sampleDoc(desc string) *types.Doc {
	return &types.Doc{Description: desc, JoyScore: 5, Emoji: "✨"}
}

func TestCache(t *testing.T) {
	cache := NewCache(2)

	docA := sampleDoc("a")
	cache.Set("hash-a", docA)

	got, ok := cache.Get("hash-a")
	require.True(t, ok)
	assert.Equal(t, docA.Description, got.Description)

	// Returned copy does not pollute the cache
	got.Description = "mutated"
	again, ok := cache.Get("hash-a")
	require.True(t, ok)
	assert.Equal(t, docA.Description, again.Description)

	// LRU eviction at capacity
	cache.Set("hash-b", sampleDoc("b"))
	cache.Set("hash-c", sampleDoc("c"))
	assert.Equal(t, 2, cache.Size())
	_, ok = cache.Get("hash-a")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}
