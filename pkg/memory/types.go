// Package memory implements mnemo's persistent memory store: four
// flat-file JSON collections (facts, procedures, interactions, short-term
// notes), a keyword relevance engine over them, and the context-string
// assembler that grounds each completion request.
package memory

import "time"

// TimestampLayout is a fixed-width RFC3339 layout. Every record timestamp
// is produced with it in UTC, so lexicographic comparison of timestamps is
// equivalent to chronological comparison.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultSearchLimit is the number of results search operations and the
// context assembler use when the caller has no stronger opinion.
const DefaultSearchLimit = 3

// DefaultShortTermLimit is the nominal capacity of the short-term
// collection. It is advisory: the store never evicts short-term entries.
const DefaultShortTermLimit = 10

// Fact is a single piece of semantic knowledge: free text plus a category
// label.
type Fact struct {
	Text      string `json:"fact"`
	Category  string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Procedure is a named, ordered list of textual steps describing how to
// perform a task.
type Procedure struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Timestamp   string   `json:"timestamp"`
}

// Interaction is one recorded user/agent exchange with optional metadata.
type Interaction struct {
	UserMessage  string                 `json:"user_message"`
	AgentMessage string                 `json:"agent_message"`
	Metadata     map[string]interface{} `json:"metadata"`
	Timestamp    string                 `json:"timestamp"`
}

// ShortTermEntry is a transient note weighted by importance, intended for
// current-conversation relevance.
type ShortTermEntry struct {
	Content    string  `json:"content"`
	Importance float64 `json:"importance"`
	Timestamp  string  `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
