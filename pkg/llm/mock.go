package llm

import (
	"context"

	"github.com/entrhq/mnemo/pkg/types"
)

// MockProvider is a test double for Provider. CompleteFunc, when set,
// handles calls; otherwise Complete echoes a canned response.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, messages []*types.Message) (*types.Message, error)
	Model        string

	// Calls records every message batch passed to Complete.
	Calls [][]*types.Message
}

// Complete implements Provider.
func (m *MockProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	m.Calls = append(m.Calls, messages)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return types.NewAssistantMessage("mock response"), nil
}

// GetModel implements Provider.
func (m *MockProvider) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetBaseURL implements Provider.
func (m *MockProvider) GetBaseURL() string {
	return "mock://"
}
