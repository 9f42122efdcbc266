// Package resolver turns a natural-language instruction into an EditTriple,
// asking a text-generation service first and falling back to fixed rules
// whenever the service fails or answers out of format.
package resolver

import (
	"context"
	"time"

	"github.com/regexify/regexify/internal/domain"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
)

const DefaultTimeout = 30 * time.Second

type Resolver struct {
	generator ai.Generator
	timeout   time.Duration
}

// New creates a resolver. A nil generator resolves with the fallback rules
// only; a non-positive timeout means DefaultTimeout.
func New(generator ai.Generator, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{generator: generator, timeout: timeout}
}

// Resolve always returns a usable triple.
func (r *Resolver) Resolve(ctx context.Context, instruction string, available domain.ColumnSet) domain.EditTriple {
	return r.ResolveDetailed(ctx, instruction, available).EditTriple
}

// ResolveDetailed is Resolve plus the source of the triple.
func (r *Resolver) ResolveDetailed(ctx context.Context, instruction string, available domain.ColumnSet) domain.Resolution {
	if r.generator != nil {
		triple, err := r.ask(ctx, instruction, available)
		if err == nil {
			debuglog.Debug(debuglog.Basic, "resolved by model: column=%q pattern=%q replacement=%q\n",
				triple.TargetColumn, triple.Pattern, triple.Replacement)
			return domain.Resolution{EditTriple: triple, Source: domain.SourceModel}
		}
		debuglog.Debug(debuglog.Basic, "model resolution failed, using fallback: %v\n", err)
	}

	triple := Fallback(instruction, available)
	debuglog.Debug(debuglog.Basic, "resolved by fallback: column=%q pattern=%q replacement=%q\n",
		triple.TargetColumn, triple.Pattern, triple.Replacement)
	return domain.Resolution{EditTriple: triple, Source: domain.SourceFallback}
}

type answer struct {
	raw string
	err error
}

// ask bounds the generator call by the timeout even if the generator ignores
// its context.
func (r *Resolver) ask(ctx context.Context, instruction string, available domain.ColumnSet) (domain.EditTriple, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan answer, 1)
	go func() {
		raw, err := r.generator.Generate(ctx, SystemPrompt, UserPrompt(instruction, available))
		done <- answer{raw: raw, err: err}
	}()

	var a answer
	select {
	case a = <-done:
	case <-ctx.Done():
		return domain.EditTriple{}, ctx.Err()
	}
	if a.err != nil {
		return domain.EditTriple{}, a.err
	}
	debuglog.Debug(debuglog.Detailed, "model answer: %s\n", a.raw)

	return ParseAnswer(a.raw, available)
}
