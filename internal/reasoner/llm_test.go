package reasoner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNew_ProviderDispatch(t *testing.T) {
	r, err := New("disabled", Config{})
	require.NoError(t, err)
	assert.False(t, r.Available())

	_, err = New("anthropic", Config{})
	assert.Error(t, err, "anthropic without API key must fail")

	_, err = New("openai", Config{APIKey: "k"})
	assert.NoError(t, err)

	_, err = New("wat", Config{})
	assert.Error(t, err)
}

func TestNew_RequestsPerSecond(t *testing.T) {
	r, err := New("anthropic", Config{APIKey: "k", RequestsPerSecond: 4})
	require.NoError(t, err)
	assert.Equal(t, rate.Limit(4), r.(*anthropicReasoner).limiter.Limit())

	r, err = New("openai", Config{APIKey: "k", RequestsPerSecond: 0.5})
	require.NoError(t, err)
	assert.Equal(t, rate.Limit(0.5), r.(*openAIReasoner).limiter.Limit())

	// Zero keeps the built-in default.
	r, err = New("anthropic", Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, rate.Limit(defaultRateLimit), r.(*anthropicReasoner).limiter.Limit())
}

func TestNoOpReasoner_AnalyzeFails(t *testing.T) {
	r := &NoOpReasoner{}
	_, err := r.Analyze(context.Background(), "anything")
	assert.Error(t, err, "disabled reasoner must fail so the cascade engages")
}

func TestAnthropicReasoner_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Category III. A formal screening is required."}]}`)
	}))
	defer srv.Close()

	r, err := New("anthropic", Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := r.Analyze(context.Background(), "replace the breaker")
	require.NoError(t, err)
	assert.Contains(t, out, "Category III")
}

func TestAnthropicReasoner_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r, err := New("anthropic", Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = r.Analyze(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestOpenAIReasoner_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Category V. Screening is not required."}}]}`)
	}))
	defer srv.Close()

	r, err := New("openai", Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := r.Analyze(context.Background(), "identical swap")
	require.NoError(t, err)
	assert.Contains(t, out, "not required")
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(fmt.Errorf("plain")))
	assert.True(t, IsRetryable(&retryableError{err: fmt.Errorf("x")}))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &retryableError{err: fmt.Errorf("x")})))
}
