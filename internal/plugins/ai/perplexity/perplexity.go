package perplexity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perplexity "github.com/sgaunet/perplexity-go/v2"

	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

const DefaultModel = "sonar"

var ErrMissingAPIKey = errors.New("perplexity: API key is required")

var _ ai.Generator = (*Client)(nil)

type Client struct {
	client  *perplexity.Client
	Options ai.Options
}

func NewClient(apiKey string, opts ai.Options) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Client{client: perplexity.NewClient(apiKey), Options: opts}, nil
}

func (c *Client) requestOptions(systemPrompt, userPrompt string) []perplexity.CompletionRequestOption {
	opts := []perplexity.CompletionRequestOption{
		perplexity.WithModel(c.Options.Model),
		perplexity.WithMessages([]perplexity.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		}),
	}
	if c.Options.MaxTokens > 0 {
		opts = append(opts, perplexity.WithMaxTokens(c.Options.MaxTokens))
	}
	// Perplexity defaults to 1.0; only send an explicit value.
	if c.Options.Temperature > 0 {
		opts = append(opts, perplexity.WithTemperature(c.Options.Temperature))
	}
	return opts
}

// Generate sends a single completion request. The library call takes no
// context, so cancellation is only checked before sending.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	request := perplexity.NewCompletionRequest(c.requestOptions(systemPrompt, userPrompt)...)
	resp, err := c.client.SendCompletionRequest(request)
	if err != nil {
		return "", fmt.Errorf("perplexity: %w", err)
	}

	content := strings.TrimSpace(resp.GetLastContent())
	debuglog.Debug(debuglog.Wire, "perplexity answer: %s\n", content)
	if content == "" {
		return "", errors.New("perplexity: empty response")
	}
	return content, nil
}
