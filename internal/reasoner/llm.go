package reasoner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Default client settings.
const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-sonnet-20241022"
	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultMaxTokens        = 1024
	defaultTimeout          = 30 * time.Second
)

// Rate limiter defaults: 50 requests per minute for both APIs.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// newLimiter builds the outbound rate limiter from configuration.
func newLimiter(cfg Config) *rate.Limiter {
	limit := rate.Limit(defaultRateLimit)
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return rate.NewLimiter(limit, defaultBurst)
}

// analysisPrompt asks for prose the classifier and decider can scan: an
// explicit category token and an explicit screening assertion.
const analysisPrompt = `You are a senior engineer screening proposed facility changes.

Analyze the change description and respond in plain prose. Your analysis must:
1. State the screening category explicitly as one of "Category I" through "Category V"
   (Category I: extensive design change, Category V: identical replacement).
2. State explicitly whether a formal screening "is required" or "is not required".
3. Note any safety, environmental, or seismic considerations.
4. Optionally state a confidence such as "confidence: 0.8".

Keep the analysis under 200 words. Do not use JSON or markdown.`

// retryableError marks an error the caller may retry.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// IsRetryable reports whether err carries the retryable marker.
func IsRetryable(err error) bool {
	for e := err; e != nil; {
		if _, ok := e.(*retryableError); ok {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return false
}

// anthropicReasoner calls the Anthropic Messages API for analysis prose.
type anthropicReasoner struct {
	model      string
	apiKey     string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newAnthropicReasoner(cfg Config) (Reasoner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key required")
	}

	r := &anthropicReasoner{
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		maxTokens: cfg.MaxTokens,
		limiter:   newLimiter(cfg),
	}
	if r.model == "" {
		r.model = defaultAnthropicModel
	}
	if r.baseURL == "" {
		r.baseURL = defaultAnthropicBaseURL
	}
	if r.maxTokens == 0 {
		r.maxTokens = defaultMaxTokens
	}
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	r.httpClient = &http.Client{Timeout: timeout}
	return r, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Analyze performs a single attempt against the API. Retry policy lives in
// the screening service so the fallback cascade sees one failure.
func (a *anthropicReasoner) Analyze(ctx context.Context, text string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    analysisPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: text}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", a.apiKey)
	req.Header.Set("Anthropic-Version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &retryableError{err: fmt.Errorf("reasoning request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("reasoning service error (%d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reasoning service error (%d): %s", resp.StatusCode, raw)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty response from reasoning service")
	}
	return parsed.Content[0].Text, nil
}

func (a *anthropicReasoner) Available() bool { return a.apiKey != "" }

// openAIReasoner calls the OpenAI chat completions API for analysis prose.
type openAIReasoner struct {
	model      string
	apiKey     string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newOpenAIReasoner(cfg Config) (Reasoner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key required")
	}

	r := &openAIReasoner{
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		maxTokens: cfg.MaxTokens,
		limiter:   newLimiter(cfg),
	}
	if r.model == "" {
		r.model = defaultOpenAIModel
	}
	if r.baseURL == "" {
		r.baseURL = defaultOpenAIBaseURL
	}
	if r.maxTokens == 0 {
		r.maxTokens = defaultMaxTokens
	}
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	r.httpClient = &http.Client{Timeout: timeout}
	return r, nil
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze performs a single attempt against the API.
func (o *openAIReasoner) Analyze(ctx context.Context, text string) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(openAIRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages: []openAIMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &retryableError{err: fmt.Errorf("reasoning request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("reasoning service error (%d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reasoning service error (%d): %s", resp.StatusCode, raw)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from reasoning service")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (o *openAIReasoner) Available() bool { return o.apiKey != "" }

var (
	_ Reasoner = (*anthropicReasoner)(nil)
	_ Reasoner = (*openAIReasoner)(nil)
)
