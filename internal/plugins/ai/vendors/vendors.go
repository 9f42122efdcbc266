// Package vendors builds the configured text-generation client.
package vendors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/regexify/regexify/internal/config"
	"github.com/regexify/regexify/internal/i18n"
	"github.com/regexify/regexify/internal/plugins/ai"
	"github.com/regexify/regexify/internal/plugins/ai/anthropic"
	"github.com/regexify/regexify/internal/plugins/ai/azure"
	"github.com/regexify/regexify/internal/plugins/ai/dryrun"
	"github.com/regexify/regexify/internal/plugins/ai/gemini"
	"github.com/regexify/regexify/internal/plugins/ai/hfrouter"
	"github.com/regexify/regexify/internal/plugins/ai/ollama"
	"github.com/regexify/regexify/internal/plugins/ai/openai"
	"github.com/regexify/regexify/internal/plugins/ai/perplexity"
)

const (
	HF         = "hf"
	OpenAI     = "openai"
	Anthropic  = "anthropic"
	Ollama     = "ollama"
	Gemini     = "gemini"
	Azure      = "azure"
	Perplexity = "perplexity"
	DryRun     = "dryrun"
	// None disables the model; every instruction is resolved by the fallback rules.
	None = "none"
)

var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrUnknownVendor = errors.New("unknown vendor")
)

// HFTokenEnv holds the Hugging Face token. It is read for the hf vendor only.
const HFTokenEnv = "HF_API_TOKEN"

// defaultModels apply when no model name is configured.
var defaultModels = map[string]string{
	HF:         config.DefaultModel,
	OpenAI:     "gpt-4o-mini",
	Anthropic:  "claude-3-5-haiku-latest",
	Ollama:     "llama3.1",
	Gemini:     "gemini-2.0-flash",
	Azure:      "gpt-4o-mini",
	Perplexity: perplexity.DefaultModel,
}

// Azure falls back to Entra ID without a key; Ollama runs locally.
var needsKey = map[string]bool{
	HF:         true,
	OpenAI:     true,
	Anthropic:  true,
	Gemini:     true,
	Perplexity: true,
}

// Names lists the supported vendor names.
func Names() []string {
	names := []string{HF, OpenAI, Anthropic, Ollama, Gemini, Azure, Perplexity, DryRun, None}
	sort.Strings(names)
	return names
}

// New returns the generator for cfg.Vendor. The None vendor yields a nil
// generator and no error.
func New(ctx context.Context, cfg config.ModelConfig) (ai.Generator, error) {
	vendor := strings.ToLower(strings.TrimSpace(cfg.Vendor))
	if vendor == "" {
		vendor = config.DefaultVendor
	}

	if vendor == HF && cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(HFTokenEnv)
	}
	if needsKey[vendor] && cfg.APIKey == "" {
		return nil, fmt.Errorf(i18n.T("vendor_error_api_key_required")+": %w", vendor, ErrMissingAPIKey)
	}

	opts := Options(vendor, cfg)

	switch vendor {
	case HF:
		return hfrouter.NewClient(cfg.BaseURL, cfg.APIKey, opts, cfg.Timeout), nil
	case OpenAI:
		return openai.NewClient(cfg.APIKey, cfg.BaseURL, opts), nil
	case Anthropic:
		return anthropic.NewClient(cfg.APIKey, cfg.BaseURL, opts), nil
	case Ollama:
		client, err := ollama.NewClient(cfg.BaseURL, opts, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case Gemini:
		client, err := gemini.NewClient(ctx, cfg.APIKey, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	case Azure:
		client, err := azure.NewClient(cfg.BaseURL, cfg.APIKey, cfg.APIVersion, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	case Perplexity:
		client, err := perplexity.NewClient(cfg.APIKey, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	case DryRun:
		return dryrun.NewClient(cfg.DryRunAnswer), nil
	case None:
		return nil, nil
	default:
		return nil, fmt.Errorf(i18n.T("vendor_error_unknown")+": %w", vendor, ErrUnknownVendor)
	}
}

// Options derives the sampling options for vendor from cfg.
func Options(vendor string, cfg config.ModelConfig) ai.Options {
	model := cfg.Name
	if model == "" {
		model = defaultModels[vendor]
	}
	return ai.Options{
		Model:       model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// Timeout is the resolver budget for cfg.
func Timeout(cfg config.ModelConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return config.DefaultTimeout
	}
	return cfg.Timeout
}
