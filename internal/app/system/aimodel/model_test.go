package aimodel

import (
	"context"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare", `{"header":"x"}`, `{"header":"x"}`, false},
		{"fenced", "```json\n{\"keywords\":[\"a\"]}\n```", `{"keywords":["a"]}`, false},
		{"prose around", `Claro: {"a":{"b":1}} listo`, `{"a":{"b":1}}`, false},
		{"none", "sin json", "", true},
		{"reversed", "} {", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractJSON = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ProviderGemini})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Config{Provider: "nope", APIKey: "k"}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestNew_Anthropic(t *testing.T) {
	m, err := New(context.Background(), Config{Provider: "Anthropic", APIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "anthropic:"+DefaultAnthropicModel {
		t.Errorf("Name = %q", m.Name())
	}
}
