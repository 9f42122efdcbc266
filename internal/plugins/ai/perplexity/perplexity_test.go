package perplexity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexify/regexify/internal/plugins/ai"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", ai.Options{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := NewClient("key", ai.Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Options.Model)
}

func TestRequestOptions(t *testing.T) {
	c, err := NewClient("key", ai.Options{Model: "sonar-pro"})
	require.NoError(t, err)
	assert.Len(t, c.requestOptions("system", "user"), 2)

	c.Options.MaxTokens = 200
	c.Options.Temperature = 0.1
	assert.Len(t, c.requestOptions("system", "user"), 4)
}

func TestGenerateCanceled(t *testing.T) {
	c, err := NewClient("key", ai.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Generate(ctx, "system", "user")
	assert.ErrorIs(t, err, context.Canceled)
}
