// Package hfrouter talks to chat-completion endpoints over plain HTTP, such as
// the Hugging Face inference router. It accepts both the chat-style
// choices[0].message.content answer and the text-generation generated_text
// answer.
package hfrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

const (
	DefaultURL     = "https://router.huggingface.co/nebius/v1/chat/completions"
	defaultTimeout = 30 * time.Second
)

// ErrUnexpectedShape is returned when the body carries no recognizable answer.
var ErrUnexpectedShape = errors.New("unexpected response shape")

var _ ai.Generator = (*Client)(nil)

type Client struct {
	URL     string
	APIKey  string
	Options ai.Options

	HttpClient *http.Client
}

// NewClient creates a client for url (DefaultURL when empty). timeout bounds
// every request; zero means 30s.
func NewClient(url, apiKey string, opts ai.Options, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		URL:        url,
		APIKey:     apiKey,
		Options:    opts,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Messages    []message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

func (c *Client) buildRequest(systemPrompt, userPrompt string) ([]byte, error) {
	return json.Marshal(request{
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Model:       c.Options.Model,
		Temperature: c.Options.Temperature,
		MaxTokens:   c.Options.MaxTokens,
	})
}

// Generate posts one chat request and returns the trimmed answer text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := c.buildRequest(systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("hfrouter: %w", err)
	}

	debuglog.Debug(debuglog.Detailed, "hfrouter request to %s\n", c.URL)
	debuglog.Debug(debuglog.Wire, "hfrouter request body: %s\n", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("hfrouter: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hfrouter: HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hfrouter: failed to read response: %w", err)
	}

	debuglog.Debug(debuglog.Detailed, "hfrouter response status: %d\n", resp.StatusCode)
	debuglog.Debug(debuglog.Wire, "hfrouter response body: %s\n", respBody)

	if resp.StatusCode != http.StatusOK {
		errMsg := string(respBody)
		if len(errMsg) > 200 {
			errMsg = errMsg[:200] + "... (truncated)"
		}
		return "", fmt.Errorf("hfrouter: HTTP %d: %s", resp.StatusCode, errMsg)
	}

	return ParseResponse(respBody)
}

// ParseResponse extracts the answer from a chat-completions object, a
// text-generation object or a text-generation array.
func ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("hfrouter: %w: invalid JSON", ErrUnexpectedShape)
	}
	result := gjson.ParseBytes(body)

	var content gjson.Result
	switch {
	case result.Get("choices.0").Exists():
		content = result.Get("choices.0.message.content")
	case result.IsArray():
		content = result.Get("0.generated_text")
	default:
		content = result.Get("generated_text")
	}

	if content.Type != gjson.String {
		return "", fmt.Errorf("hfrouter: %w", ErrUnexpectedShape)
	}
	return strings.TrimSpace(content.String()), nil
}
