package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

// Anthropic requires max_tokens on every request.
const defaultMaxTokens = 1024

var _ ai.Generator = (*Client)(nil)

type Client struct {
	client  anthropic.Client
	Options ai.Options
}

func NewClient(apiKey, baseURL string, opts ai.Options, extra ...option.RequestOption) *Client {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, extra...)
	return &Client{client: anthropic.NewClient(reqOpts...), Options: opts}
}

func (c *Client) buildParams(systemPrompt, userPrompt string) anthropic.MessageNewParams {
	maxTokens := int64(c.Options.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(c.Options.Model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(c.Options.Temperature),
	}
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, c.buildParams(systemPrompt, userPrompt))
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var parts []string
	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	debuglog.Debug(debuglog.Detailed, "anthropic usage: in=%d out=%d\n", message.Usage.InputTokens, message.Usage.OutputTokens)
	if len(parts) == 0 {
		return "", errors.New("anthropic: no text content in response")
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}
