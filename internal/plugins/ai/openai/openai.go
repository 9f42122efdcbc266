package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

var _ ai.Generator = (*Client)(nil)

// Client generates answers through the OpenAI chat completions API or any
// compatible endpoint.
type Client struct {
	ApiClient *openai.Client
	Options   ai.Options
}

// NewClient creates a client. An empty baseURL uses the OpenAI API; extra
// request options are appended after the key and URL.
func NewClient(apiKey, baseURL string, opts ai.Options, extra ...option.RequestOption) *Client {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return NewClientWithOptions(opts, append(reqOpts, extra...)...)
}

// NewClientWithOptions creates a client from raw request options, for
// compatible services that authenticate differently.
func NewClientWithOptions(opts ai.Options, reqOpts ...option.RequestOption) *Client {
	client := openai.NewClient(reqOpts...)
	return &Client{ApiClient: &client, Options: opts}
}

func (c *Client) buildParams(systemPrompt, userPrompt string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.Options.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.Options.Temperature),
	}
	if c.Options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.Options.MaxTokens))
	}
	return params
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.ApiClient.Chat.Completions.New(ctx, c.buildParams(systemPrompt, userPrompt))
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	debuglog.Debug(debuglog.Detailed, "openai finish reason: %s\n", resp.Choices[0].FinishReason)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
