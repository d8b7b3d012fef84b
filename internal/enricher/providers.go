package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/dirdocs/pkg/types"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOllamaBaseURL = "http://localhost:11434"

	httpTimeout = 60 * time.Second
)

// modelResp is the JSON object providers are instructed to return.
// joy_score is kept raw because models occasionally quote the number.
type modelResp struct {
	Description string          `json:"description"`
	JoyScore    json.RawMessage `json:"joy_score"`
	Emoji       string          `json:"emoji"`
}

// statusError maps an HTTP status to the error taxonomy: rate limiting,
// timeouts and server-side failures are worth retrying, other client
// errors are not.
func statusError(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return fmt.Errorf("%w: api error %d: %s", types.ErrTransient, code, msg)
	default:
		return fmt.Errorf("%w: api error %d: %s", types.ErrPermanent, code, msg)
	}
}

// parseModelResponse decodes the provider answer into a record,
// tolerating markdown code fences and quoted scores. A response that
// cannot be decoded is permanent; retrying would replay the same
// confusion at full price.
func parseModelResponse(answer string) (*types.Doc, error) {
	cleaned := stripCodeFence(answer)

	var mr modelResp
	if err := json.Unmarshal([]byte(cleaned), &mr); err != nil {
		return nil, fmt.Errorf("%w: malformed model response: %v", types.ErrPermanent, err)
	}
	if mr.Description == "" {
		return nil, fmt.Errorf("%w: model response has no description", types.ErrPermanent)
	}

	doc := &types.Doc{
		Description: SanitizeDescription(mr.Description),
		JoyScore:    coerceScore(mr.JoyScore),
		Emoji:       strings.TrimSpace(mr.Emoji),
	}
	doc.ClampScore()
	if doc.IsEmpty() {
		return nil, fmt.Errorf("%w: description empty after sanitizing", types.ErrPermanent)
	}
	return doc, nil
}

func coerceScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// OpenAIProvider implements Enricher against any OpenAI-compatible chat
// completions endpoint.
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	tpl        *PromptTemplate
	retry      RetryConfig
	httpClient *http.Client
	cache      *Cache
}

// NewOpenAIProvider creates an enricher for an OpenAI-compatible API.
func NewOpenAIProvider(apiKey, model, baseURL string, tpl *PromptTemplate, retry RetryConfig, cache *Cache) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", types.ErrNoProvider)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if tpl == nil {
		tpl = MustDefaultTemplate()
	}

	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tpl:        tpl,
		retry:      retry,
		httpClient: &http.Client{Timeout: httpTimeout},
		cache:      cache,
	}, nil
}

func (o *OpenAIProvider) Describe(ctx context.Context, req Request) (*types.Doc, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if o.cache != nil {
		if doc, ok := o.cache.Get(req.Hash); ok {
			return doc, nil
		}
	}

	system, user, err := o.tpl.Render(req)
	if err != nil {
		return nil, err
	}

	doc, err := retryWithBackoff(ctx, o.retry, func() (*types.Doc, error) {
		answer, err := o.callAPI(ctx, system, user)
		if err != nil {
			return nil, err
		}
		return parseModelResponse(answer)
	})
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		o.cache.Set(req.Hash, doc)
	}
	return doc, nil
}

func (o *OpenAIProvider) callAPI(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", types.ErrPermanent, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", types.ErrPermanent, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: api call: %v", types.ErrTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", statusError(resp.StatusCode, bodyBytes)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", types.ErrPermanent, err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", types.ErrPermanent)
	}
	return apiResp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Provider() string {
	return ProviderOpenAI
}

func (o *OpenAIProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}

// OllamaProvider implements Enricher against a local Ollama server.
type OllamaProvider struct {
	model      string
	baseURL    string
	tpl        *PromptTemplate
	retry      RetryConfig
	httpClient *http.Client
	cache      *Cache
}

// NewOllamaProvider creates an enricher backed by Ollama.
func NewOllamaProvider(model, baseURL string, tpl *PromptTemplate, retry RetryConfig, cache *Cache) (*OllamaProvider, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if tpl == nil {
		tpl = MustDefaultTemplate()
	}

	return &OllamaProvider{
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tpl:        tpl,
		retry:      retry,
		httpClient: &http.Client{Timeout: httpTimeout},
		cache:      cache,
	}, nil
}

func (l *OllamaProvider) Describe(ctx context.Context, req Request) (*types.Doc, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if l.cache != nil {
		if doc, ok := l.cache.Get(req.Hash); ok {
			return doc, nil
		}
	}

	system, user, err := l.tpl.Render(req)
	if err != nil {
		return nil, err
	}

	doc, err := retryWithBackoff(ctx, l.retry, func() (*types.Doc, error) {
		answer, err := l.callAPI(ctx, system, user)
		if err != nil {
			return nil, err
		}
		return parseModelResponse(answer)
	})
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(req.Hash, doc)
	}
	return doc, nil
}

func (l *OllamaProvider) callAPI(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model":  l.model,
		"system": system,
		"prompt": user,
		"format": "json",
		"stream": false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", types.ErrPermanent, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", types.ErrPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: api call: %v", types.ErrTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", statusError(resp.StatusCode, bodyBytes)
	}

	var apiResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", types.ErrPermanent, err)
	}
	return apiResp.Response, nil
}

func (l *OllamaProvider) Provider() string {
	return ProviderOllama
}

func (l *OllamaProvider) Close() error {
	l.httpClient.CloseIdleConnections()
	return nil
}

// LocalProvider is a deterministic offline enricher. It derives a
// record from request metadata alone, which makes runs reproducible
// without a backend. Useful for tests and dry runs.
type LocalProvider struct {
	cache *Cache
}

var localEmoji = []string{"📄", "📦", "🔧", "📜", "🧩", "🗂️", "⚙️", "📝"}

// NewLocalProvider creates the offline enricher.
func NewLocalProvider(cache *Cache) (*LocalProvider, error) {
	return &LocalProvider{cache: cache}, nil
}

func (p *LocalProvider) Describe(ctx context.Context, req Request) (*types.Doc, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.cache != nil {
		if doc, ok := p.cache.Get(req.Hash); ok {
			return doc, nil
		}
	}

	var seed byte
	for i := 0; i < len(req.Hash); i++ {
		seed += req.Hash[i]
	}

	desc := fmt.Sprintf("%s file %s (%d bytes)", req.Filetype, req.Filename, req.Size)
	if req.Binary {
		desc = fmt.Sprintf("Binary %s file %s (%d bytes)", req.Filetype, req.Filename, req.Size)
	}

	doc := &types.Doc{
		Description: SanitizeDescription(desc),
		JoyScore:    float64(seed % (types.MaxJoyScore + 1)),
		Emoji:       localEmoji[int(seed)%len(localEmoji)],
	}

	if p.cache != nil {
		p.cache.Set(req.Hash, doc)
	}
	return doc, nil
}

func (p *LocalProvider) Provider() string {
	return ProviderLocal
}

func (p *LocalProvider) Close() error {
	return nil
}
