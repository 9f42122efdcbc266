package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/regexify/regexify/internal/plugins/ai"
)

var _ ai.Generator = (*Client)(nil)

type Client struct {
	client  *genai.Client
	Options ai.Options
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string, opts ai.Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &Client{client: client, Options: opts}, nil
}

func (c *Client) buildConfig(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.Options.Temperature)),
	}
	if c.Options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(c.Options.MaxTokens)
	}
	return cfg
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.Options.Model, genai.Text(userPrompt), c.buildConfig(systemPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
