package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const providerOpenRouter = "openrouter"

// OpenRouterClient calls the OpenRouter chat completions endpoint.
type OpenRouterClient struct {
	http  *resty.Client
	model string
}

// NewOpenRouterClient creates an OpenRouter client.
func NewOpenRouterClient(apiKey, baseURL, model string, timeout time.Duration) *OpenRouterClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &OpenRouterClient{http: client, model: model}
}

// Complete sends prompt as a single user message.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       c.model,
			"temperature": temperature,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", &APICallError{Provider: providerOpenRouter, Message: "request failed", Cause: err}
	}

	body := resp.Body()
	if resp.IsError() {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", &APICallError{Provider: providerOpenRouter, Message: fmt.Sprintf("status %d: %s", resp.StatusCode(), msg)}
	}

	text := strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
	if text == "" {
		return "", &APICallError{Provider: providerOpenRouter, Message: "no response from LLM"}
	}
	return text, nil
}

// Close releases idle connections.
func (c *OpenRouterClient) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
