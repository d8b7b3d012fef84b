// Package enricher generates documentation records for files using
// configurable model providers.
//
// The enricher supports OpenAI-compatible chat completion endpoints, a
// local Ollama server, and a deterministic offline provider, with
// caching, retry, and a tolerant response parser.
//
// # Basic Usage
//
//	// Create enricher (auto-detects provider from environment)
//	enr, err := enricher.New(enricher.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer enr.Close()
//
//	doc, err := enr.Describe(ctx, enricher.Request{
//	    Path:     "cmd/main.go",
//	    Filename: "main.go",
//	    Filetype: "go",
//	    Hash:     hash,
//	    Excerpt:  excerpt,
//	})
//	fmt.Println(doc.Description)
//
// # Provider Selection
//
// The enricher selects a provider based on environment variables:
//
//  1. If DIRDOCS_PROVIDER is set → use specified provider
//  2. Else if OPENAI_API_KEY is set → use OpenAI
//  3. Else if OLLAMA_HOST is set → use Ollama
//  4. Else → fallback to local provider (offline mode)
//
// # Retry and Error Taxonomy
//
// API calls retry with exponential backoff plus jitter. Errors wrap one
// of two sentinels:
//
//   - types.ErrTransient: timeouts, rate limits, 5xx, transport errors;
//     retried up to the attempt budget
//   - types.ErrPermanent: other 4xx and malformed responses; failed
//     immediately without retry
//
// A file whose enrichment ultimately fails keeps its previous record;
// the failure never degrades the persisted index.
//
// # Prompts
//
// Each file renders into a single two-part prompt built from a yaml
// template. Large files contribute only representative excerpt chunks
// (opening, middle, end), and binary content is replaced by a
// suppressed-content marker before rendering.
package enricher
