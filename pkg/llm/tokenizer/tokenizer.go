// Package tokenizer provides token counting and truncation for context
// budgeting, backed by tiktoken's cl100k_base encoding.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts and truncates text in model tokens. It satisfies
// memory.TokenCounter.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New creates a tokenizer on the cl100k_base encoding.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load cl100k_base encoding: %w", err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the token count of text. If the encoding is unavailable
// it falls back to a conservative len/4 estimate.
func (t *Tokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	if t.enc == nil {
		return len(text) / 4
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate cuts text down to at most maxTokens tokens. Text already
// within the budget is returned unchanged.
func (t *Tokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if t.enc == nil {
		if len(text) <= maxTokens*4 {
			return text
		}
		return text[:maxTokens*4]
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return t.enc.Decode(tokens[:maxTokens])
}
