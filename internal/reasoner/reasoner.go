package reasoner

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/screend/internal/classify"
)

// Reasoner is the external reasoning contract: given a change description,
// return a free-text analysis. The output is uncontrolled prose; callers
// scan it for category tokens and screening assertions.
type Reasoner interface {
	// Analyze returns the reasoning service's free-text analysis of text.
	Analyze(ctx context.Context, text string) (string, error)

	// Available returns true when the reasoner is configured and ready.
	Available() bool
}

// Suggester is the similarity contract: given a change description, return
// a ranked category suggestion with a confidence in [0,1].
type Suggester interface {
	Suggest(ctx context.Context, text string) (classify.Suggestion, error)
}

// Config holds provider-specific reasoning client configuration.
type Config struct {
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
	Timeout   int    `json:"timeout,omitempty"` // seconds
	// RequestsPerSecond rate-limits outbound calls. Zero applies the
	// built-in default.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`
}

// New creates a reasoning client for the named provider. "disabled" returns
// a NoOpReasoner whose Analyze always fails, which routes every request
// through the keyword fallback.
func New(provider string, cfg Config) (Reasoner, error) {
	switch provider {
	case "disabled", "":
		return &NoOpReasoner{}, nil
	case "anthropic":
		return newAnthropicReasoner(cfg)
	case "openai":
		return newOpenAIReasoner(cfg)
	default:
		return nil, fmt.Errorf("unknown reasoner provider: %s", provider)
	}
}

// NoOpReasoner is the disabled reasoning client.
type NoOpReasoner struct{}

// Analyze always reports the reasoner unavailable.
func (n *NoOpReasoner) Analyze(ctx context.Context, text string) (string, error) {
	return "", fmt.Errorf("reasoner disabled")
}

// Available returns false.
func (n *NoOpReasoner) Available() bool { return false }

var _ Reasoner = (*NoOpReasoner)(nil)
