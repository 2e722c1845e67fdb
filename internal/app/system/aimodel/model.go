// Package aimodel hides the generative text service behind a small interface.
//
// Two providers are supported: Gemini (the default) and Anthropic. Callers
// only see Model, so handlers and tests never touch an SDK directly.
package aimodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Provider names accepted by New.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Default model identifiers per provider.
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAnthropicModel = "claude-sonnet-4-5"
)

// ErrNotConfigured is returned by New when no API key is set.
var ErrNotConfigured = errors.New("aimodel: api key not configured")

// ErrEmptyResponse is returned when the service answers with no text.
var ErrEmptyResponse = errors.New("aimodel: empty response")

// Model generates text from a prompt.
type Model interface {
	// GenerateText returns the model's free-form answer, trimmed.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a JSON document shaped like schema and returns
	// the raw JSON text.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	// Name identifies the provider and model for logs and health output.
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// New builds the Model for cfg.Provider.
func New(ctx context.Context, cfg Config) (Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("aimodel: unknown provider %q", cfg.Provider)
	}
}

// extractJSON finds the outermost JSON object in s.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("aimodel: no JSON object found in response")
	}
	return s[start : end+1], nil
}
