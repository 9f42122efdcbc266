package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollamaapi "github.com/ollama/ollama/api"

	"github.com/regexify/regexify/internal/plugins/ai"
)

const DefaultBaseUrl = "http://localhost:11434"

var _ ai.Generator = (*Client)(nil)

type Client struct {
	client  *ollamaapi.Client
	Options ai.Options
}

// NewClient creates a client for a local or remote Ollama server.
func NewClient(baseURL string, opts ai.Options, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseUrl
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid base url: %w", err)
	}
	return &Client{
		client:  ollamaapi.NewClient(u, &http.Client{Timeout: timeout}),
		Options: opts,
	}, nil
}

func (c *Client) createChatRequest(systemPrompt, userPrompt string) *ollamaapi.ChatRequest {
	stream := false
	options := map[string]any{
		"temperature": c.Options.Temperature,
	}
	if c.Options.MaxTokens > 0 {
		options["num_predict"] = c.Options.MaxTokens
	}
	return &ollamaapi.ChatRequest{
		Model: c.Options.Model,
		Messages: []ollamaapi.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:  &stream,
		Options: options,
	}
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var out strings.Builder
	err := c.client.Chat(ctx, c.createChatRequest(systemPrompt, userPrompt), func(resp ollamaapi.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}
