package ai

import "context"

// Generator is a text-generation service. It receives a system prompt fixing
// the answer format and a user prompt, and returns the raw answer text.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options are the sampling parameters shared by all vendors.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
