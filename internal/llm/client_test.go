package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/metrics"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, status int, reply string, got *chatRequest, gotAuth *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		if got != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server
}

const okReply = `{"id":"c1","object":"chat.completion","created":1,"model":"m",
	"choices":[{"index":0,"message":{"role":"assistant","content":"  Hello there  "},"finish_reason":"stop"}]}`

func TestOpenAICompatClient_Complete(t *testing.T) {
	var req chatRequest
	var auth string
	server := chatServer(t, http.StatusOK, okReply, &req, &auth)

	c := NewOpenAICompatClient("mistral", "key-1", server.URL, "mistral-large-latest", time.Second)
	text, err := c.Complete(context.Background(), "Say hello", 0.2)
	require.NoError(t, err)

	assert.Equal(t, "Hello there", text)
	assert.Equal(t, "Bearer key-1", auth)
	assert.Equal(t, "mistral-large-latest", req.Model)
	assert.InDelta(t, 0.2, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "Say hello", req.Messages[0].Content)
}

func TestOpenAICompatClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reply   string
		wantMsg string
	}{
		{
			name:    "api error",
			status:  http.StatusUnauthorized,
			reply:   `{"error":{"message":"invalid key","type":"auth"}}`,
			wantMsg: "invalid key",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			reply:   `{"id":"c1","choices":[]}`,
			wantMsg: "no choices",
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			reply:   `{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"   "}}]}`,
			wantMsg: "empty completion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, tt.status, tt.reply, nil, nil)
			c := NewOpenAICompatClient("openai", "k", server.URL, "gpt", time.Second)

			_, err := c.Complete(context.Background(), "p", 0.2)
			var apiErr *APICallError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "openai", apiErr.Provider)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOpenRouterClient_Complete(t *testing.T) {
	var req chatRequest
	var auth string
	server := chatServer(t, http.StatusOK, okReply, &req, &auth)

	c := NewOpenRouterClient("or-key", server.URL+"/", "openai/gpt-4o-mini", time.Second)
	defer func() { _ = c.Close() }()

	text, err := c.Complete(context.Background(), "Say hello", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
	assert.Equal(t, "Bearer or-key", auth)
	assert.Equal(t, "openai/gpt-4o-mini", req.Model)
}

func TestOpenRouterClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reply   string
		wantMsg string
	}{
		{"error body", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, "rate limited"},
		{"bare status", http.StatusBadGateway, ``, "502"},
		{"no content", http.StatusOK, `{"choices":[]}`, "no response from LLM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, tt.status, tt.reply, nil, nil)
			c := NewOpenRouterClient("k", server.URL, "m", time.Second)

			_, err := c.Complete(context.Background(), "p", 0.2)
			var apiErr *APICallError
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr string
	}{
		{"missing key", config.LLMConfig{Provider: "mistral"}, "API key is required"},
		{"unknown provider", config.LLMConfig{Provider: "llama", APIKey: "k"}, "unknown llm provider"},
		{"mistral default", config.LLMConfig{APIKey: "k"}, ""},
		{"openai", config.LLMConfig{Provider: "OpenAI", APIKey: "k"}, ""},
		{"openrouter", config.LLMConfig{Provider: "openrouter", APIKey: "k"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(context.Background(), tt.cfg, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, c.Close())
		})
	}
}

type scriptedClient struct {
	text   string
	err    error
	closed bool
}

func (s *scriptedClient) Complete(context.Context, string, float32) (string, error) {
	return s.text, s.err
}

func (s *scriptedClient) Close() error {
	s.closed = true
	return nil
}

func TestInstrument(t *testing.T) {
	ok := &scriptedClient{text: "fine"}
	c := Instrument(ok, "test-provider", nil)

	before := testutil.CollectAndCount(metrics.LLMRequestDuration)
	text, err := c.Complete(context.Background(), "p", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "fine", text)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.LLMRequestDuration), before)

	failing := Instrument(&scriptedClient{err: errors.New("boom")}, "test-provider", nil)
	_, err = failing.Complete(context.Background(), "p", 0.2)
	assert.EqualError(t, err, "boom")

	require.NoError(t, c.Close())
	assert.True(t, ok.closed)
}

func TestAPICallError(t *testing.T) {
	cause := errors.New("timeout")
	err := &APICallError{Provider: "mistral", Message: "request failed", Cause: cause}
	assert.Equal(t, "mistral API call failed: request failed: timeout", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &APICallError{Provider: "gemini", Message: "empty"}
	assert.Equal(t, "gemini API call failed: empty", bare.Error())
}
