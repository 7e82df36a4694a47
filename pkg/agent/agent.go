// Package agent wires the memory store, the teach-command extractor, and
// the completion provider into a single conversational agent.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/mnemo/pkg/llm"
	"github.com/entrhq/mnemo/pkg/logging"
	"github.com/entrhq/mnemo/pkg/memory"
	"github.com/entrhq/mnemo/pkg/types"
)

var agentLog *logging.Logger

func init() {
	var err error
	agentLog, err = logging.NewLogger("agent")
	if err != nil {
		agentLog.Warnf("failed to initialize agent logger, using stderr fallback: %v", err)
	}
}

// DefaultImportance is the short-term importance used when a caller does
// not supply one.
const DefaultImportance = 1.0

// Agent processes user messages: it applies teach commands to the memory
// store, grounds each completion request in retrieved context, and records
// every successful exchange as an interaction.
type Agent struct {
	provider     llm.Provider
	memory       *memory.Store
	commands     Commands
	systemPrompt string
	searchLimit  int
	seeds        []string
	seedsSet     bool
}

// Option configures an Agent.
type Option func(*Agent)

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		if prompt != "" {
			a.systemPrompt = prompt
		}
	}
}

// WithCommands overrides the trigger phrase tables.
func WithCommands(c Commands) Option {
	return func(a *Agent) {
		a.commands = c
	}
}

// WithSearchLimit sets how many results per category feed the context.
func WithSearchLimit(limit int) Option {
	return func(a *Agent) {
		if limit > 0 {
			a.searchLimit = limit
		}
	}
}

// WithSeedFacts sets the self-knowledge facts written to a store that
// opens empty. Passing nil disables seeding.
func WithSeedFacts(facts []string) Option {
	return func(a *Agent) {
		a.seeds = facts
		a.seedsSet = true
	}
}

// New creates an agent over the given provider and memory store. If the
// store's facts collection is empty, the seed facts (SeedFacts by default)
// are written so the assistant can describe its own capabilities.
func New(provider llm.Provider, store *memory.Store, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, fmt.Errorf("LLM provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("memory store is required")
	}

	a := &Agent{
		provider:     provider,
		memory:       store,
		commands:     DefaultCommands(),
		systemPrompt: SystemPrompt,
		searchLimit:  memory.DefaultSearchLimit,
	}

	for _, opt := range opts {
		opt(a)
	}
	seeds := SeedFacts
	if a.seedsSet {
		seeds = a.seeds
	}

	if len(store.Facts()) == 0 {
		for _, fact := range seeds {
			store.AddFact(fact, "self")
		}
	}

	return a, nil
}

// Memory exposes the underlying store to front-ends (stats, search).
func (a *Agent) Memory() *memory.Store {
	return a.memory
}

// ProcessMessage runs one turn: teach commands are applied to the store
// (parse failures are logged no-ops), the completion endpoint is called
// with the retrieved context, and on success the exchange is recorded.
// On completion failure no interaction is stored and the error is
// returned, so every stored interaction has a real agent response.
func (a *Agent) ProcessMessage(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("empty message")
	}

	a.maybeTeach(message)

	contextString := a.memory.BuildContext(message, a.searchLimit)
	messages := []*types.Message{
		types.NewSystemMessage(a.systemPrompt),
		types.NewSystemMessage("Relevant memory:\n" + contextString),
		types.NewUserMessage(message),
	}

	reply, err := a.provider.Complete(ctx, messages)
	if err != nil {
		agentLog.Errorf("completion failed: %v", err)
		return "", err
	}

	a.memory.AddInteraction(message, reply.Content, map[string]interface{}{
		"model": a.provider.GetModel(),
	})
	return reply.Content, nil
}

// Note records a short-term entry. An importance of zero or less falls
// back to DefaultImportance.
func (a *Agent) Note(content string, importance float64) {
	if strings.TrimSpace(content) == "" {
		agentLog.Warnf("ignoring empty short-term note")
		return
	}
	if importance <= 0 {
		importance = DefaultImportance
	}
	a.memory.AddShortTerm(content, importance)
}

// maybeTeach applies a teach command when the message carries a trigger
// phrase. Malformed payloads are logged and skipped; no partial record is
// stored.
func (a *Agent) maybeTeach(message string) {
	action, trigger := a.commands.Match(message)
	switch action {
	case ActionTeachFact:
		fact, err := parseFact(message, trigger)
		if err != nil {
			agentLog.Warnf("teach fact skipped: %v", err)
			return
		}
		a.memory.AddFact(fact, "fact")
		agentLog.Infof("learned fact via trigger %q", trigger)
	case ActionTeachProcedure:
		name, steps, err := parseProcedure(message, trigger)
		if err != nil {
			agentLog.Warnf("teach procedure skipped: %v", err)
			return
		}
		a.memory.AddProcedure(name, steps, "Steps for "+name)
		agentLog.Infof("learned procedure %q via trigger %q", name, trigger)
	}
}
