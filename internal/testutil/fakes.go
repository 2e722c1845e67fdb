package testutil

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// FakeModel is a scripted generative model. It records every prompt.
type FakeModel struct {
	mu      sync.Mutex
	Text    string
	JSON    string
	Err     error
	Prompts []string
}

// GenerateText returns Text or Err.
func (m *FakeModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.record(prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// GenerateJSON returns JSON or Err.
func (m *FakeModel) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	m.record(prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.JSON, nil
}

// Name identifies the fake.
func (m *FakeModel) Name() string { return "fake" }

// Calls returns how many prompts were sent.
func (m *FakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt.
func (m *FakeModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

func (m *FakeModel) record(prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
}
