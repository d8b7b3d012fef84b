package enricher

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/dirdocs/pkg/types"
)

// Provider names
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderLocal  = "local"

	// Default models
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOllamaModel = "llama3.2"

	// Cache
	DefaultCacheSize = 10000
)

// Request carries everything a provider needs to describe one file.
// Content arrives pre-chunked; Excerpt holds up to three representative
// chunks (opening, middle, closing) so prompt cost stays bounded for
// large files.
type Request struct {
	Path     string // slash-separated path relative to the run root
	Filename string
	Filetype string // extension without the dot, or "none"
	MimeType string
	Size     int64
	Hash     string // content hash, used as the cache key
	Excerpt  []string
	Binary   bool // true when content was suppressed
}

// Validate checks the request before it reaches a provider.
func (r Request) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("%w: request has no path", types.ErrPermanent)
	}
	if r.Hash == "" {
		return fmt.Errorf("%w: request has no content hash", types.ErrPermanent)
	}
	if !r.Binary && len(r.Excerpt) == 0 {
		return fmt.Errorf("%w: %s", types.ErrEmptyContent, r.Path)
	}
	return nil
}

// Enricher produces a documentation record for a single file.
type Enricher interface {
	// Describe generates a record for the request. Errors wrap
	// types.ErrTransient when a retry may help and types.ErrPermanent
	// when it will not.
	Describe(ctx context.Context, req Request) (*types.Doc, error)

	// Provider returns the provider name
	Provider() string

	// Close releases any resources held by the enricher
	Close() error
}

// Cache provides in-memory LRU caching of records by content hash, so
// identical content hit across runs or duplicated within a tree is only
// described once per process.
type Cache struct {
	cache *lru.Cache[string, *types.Doc]
}

// NewCache creates a record cache with LRU eviction.
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = DefaultCacheSize
	}
	cache, err := lru.New[string, *types.Doc](maxLen)
	if err != nil {
		// Should never happen with positive size, but fallback to default
		cache, _ = lru.New[string, *types.Doc](DefaultCacheSize)
	}
	return &Cache{cache: cache}
}

// Get retrieves a copy of a cached record. A copy is returned so caller
// mutations cannot pollute the cache.
func (c *Cache) Get(hash string) (*types.Doc, bool) {
	doc, ok := c.cache.Get(hash)
	if !ok {
		return nil, false
	}
	cp := *doc
	return &cp, true
}

// Set stores a record; eviction is automatic at capacity.
func (c *Cache) Set(hash string, doc *types.Doc) {
	c.cache.Add(hash, doc)
}

// Size returns the current cache size
func (c *Cache) Size() int {
	return c.cache.Len()
}

// Clear empties the cache
func (c *Cache) Clear() {
	c.cache.Purge()
}
