package aimodel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

const anthropicMaxTokens = 1024

// Anthropic talks to the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic-backed Model. An empty model selects
// DefaultAnthropicModel.
func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *Anthropic {
	if model == "" {
		model = DefaultAnthropicModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Anthropic{client: anthropic.NewClient(opts...), model: model}
}

// GenerateText implements Model.
func (a *Anthropic) GenerateText(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(msg.Content[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateJSON implements Model. The schema is described in the prompt and
// the first JSON object in the answer is returned.
func (a *Anthropic) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if schema != nil {
		shape, err := json.Marshal(schema)
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		prompt += "\n\nOutput ONLY a valid JSON object matching this schema, no markdown:\n" + string(shape)
	}
	text, err := a.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	out, err := extractJSON(text)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("aimodel: response does not contain valid JSON")
	}
	return out, nil
}

// Name implements Model.
func (a *Anthropic) Name() string {
	return "anthropic:" + a.model
}
