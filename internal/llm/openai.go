package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompatClient talks to any OpenAI-compatible chat completions API.
// It serves both OpenAI and Mistral.
type OpenAICompatClient struct {
	client   *openai.Client
	provider string
	model    string
}

// NewOpenAICompatClient creates a client. An empty baseURL keeps the OpenAI default.
func NewOpenAICompatClient(provider, apiKey, baseURL, model string, timeout time.Duration) *OpenAICompatClient {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAICompatClient{
		client:   openai.NewClientWithConfig(clientCfg),
		provider: provider,
		model:    model,
	}
}

// Complete sends prompt as a single user message.
func (c *OpenAICompatClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", &APICallError{Provider: c.provider, Message: describeOpenAIError(err), Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &APICallError{Provider: c.provider, Message: "no choices in response"}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &APICallError{Provider: c.provider, Message: "empty completion"}
	}
	return text, nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (c *OpenAICompatClient) Close() error {
	return nil
}

func describeOpenAIError(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("status %d", reqErr.HTTPStatusCode)
	}
	return "request failed"
}
