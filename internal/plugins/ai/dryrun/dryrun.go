// Package dryrun provides an offline generator. It answers with a fixed text,
// or fails when none is configured so callers take their fallback path.
package dryrun

import (
	"context"
	"errors"
	"sync"

	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

// ErrNoAnswer is returned when the client has no canned answer.
var ErrNoAnswer = errors.New("dry run: no answer configured")

var _ ai.Generator = (*Client)(nil)

type Client struct {
	answer string

	mu         sync.Mutex
	lastSystem string
	lastUser   string
	calls      int
}

func NewClient(answer string) *Client {
	return &Client{answer: answer}
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.mu.Lock()
	c.lastSystem, c.lastUser = systemPrompt, userPrompt
	c.calls++
	c.mu.Unlock()

	debuglog.Debug(debuglog.Trace, "dry run prompt:\n%s\n%s\n", systemPrompt, userPrompt)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.answer == "" {
		return "", ErrNoAnswer
	}
	return c.answer, nil
}

// LastPrompts returns the prompts of the most recent call.
func (c *Client) LastPrompts() (system, user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSystem, c.lastUser
}

// Calls returns how many times Generate ran.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
