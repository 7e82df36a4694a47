// Package llm provides the abstraction over chat-completion endpoints.
//
// The agent treats a provider as an opaque blocking collaborator: it sends
// the composed messages and receives a single response or an error. There
// is no tool calling and no streaming surface here.
package llm

import (
	"context"

	"github.com/entrhq/mnemo/pkg/types"
)

// Provider defines the interface for chat-completion integrations.
type Provider interface {
	// Complete sends messages to the LLM and returns the full assistant
	// response. A nil error guarantees a non-nil message.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string
}
