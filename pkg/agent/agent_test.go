package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/mnemo/pkg/llm"
	"github.com/entrhq/mnemo/pkg/memory"
	"github.com/entrhq/mnemo/pkg/types"
)

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.Open(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := New(nil, newTestStore(t))
	assert.Error(t, err)
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(&llm.MockProvider{}, nil)
	assert.Error(t, err)
}

func TestNewSeedsEmptyStore(t *testing.T) {
	store := newTestStore(t)

	_, err := New(&llm.MockProvider{}, store)
	require.NoError(t, err)

	facts := store.Facts()
	assert.Len(t, facts, len(SeedFacts))
	for _, f := range facts {
		assert.Equal(t, "self", f.Category)
	}
}

func TestNewDoesNotReseed(t *testing.T) {
	root := t.TempDir()

	store, err := memory.Open(root)
	require.NoError(t, err)
	_, err = New(&llm.MockProvider{}, store)
	require.NoError(t, err)

	reopened, err := memory.Open(root)
	require.NoError(t, err)
	_, err = New(&llm.MockProvider{}, reopened)
	require.NoError(t, err)

	assert.Len(t, reopened.Facts(), len(SeedFacts))
}

func TestNewSkipsSeedingNonEmptyStore(t *testing.T) {
	store := newTestStore(t)
	store.AddFact("Pre-existing fact", "fact")

	_, err := New(&llm.MockProvider{}, store)
	require.NoError(t, err)

	assert.Len(t, store.Facts(), 1)
}

func TestWithSeedFactsNilDisablesSeeding(t *testing.T) {
	store := newTestStore(t)

	_, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	assert.Empty(t, store.Facts())
}

func TestWithSeedFactsCustom(t *testing.T) {
	store := newTestStore(t)

	_, err := New(&llm.MockProvider{}, store, WithSeedFacts([]string{"I am a test assistant"}))
	require.NoError(t, err)

	facts := store.Facts()
	require.Len(t, facts, 1)
	assert.Equal(t, "I am a test assistant", facts[0].Text)
}

func TestProcessMessage(t *testing.T) {
	store := newTestStore(t)
	provider := &llm.MockProvider{
		CompleteFunc: func(_ context.Context, _ []*types.Message) (*types.Message, error) {
			return types.NewAssistantMessage("Hello John!"), nil
		},
		Model: "test-model",
	}

	agent, err := New(provider, store, WithSeedFacts(nil))
	require.NoError(t, err)

	reply, err := agent.ProcessMessage(context.Background(), "Hello, I'm John")
	require.NoError(t, err)
	assert.Equal(t, "Hello John!", reply)

	interactions := store.Interactions()
	require.Len(t, interactions, 1)
	assert.Equal(t, "Hello, I'm John", interactions[0].UserMessage)
	assert.Equal(t, "Hello John!", interactions[0].AgentMessage)
	assert.Equal(t, "test-model", interactions[0].Metadata["model"])
}

func TestProcessMessageSendsContext(t *testing.T) {
	store := newTestStore(t)
	store.AddFact("The user's name is John", "fact")
	provider := &llm.MockProvider{}

	agent, err := New(provider, store)
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(), "What is the user's name? John?")
	require.NoError(t, err)

	require.Len(t, provider.Calls, 1)
	messages := provider.Calls[0]
	require.Len(t, messages, 3)
	assert.Equal(t, types.RoleSystem, messages[0].Role)
	assert.Equal(t, types.RoleSystem, messages[1].Role)
	assert.Equal(t, types.RoleUser, messages[2].Role)
	assert.True(t, strings.HasPrefix(messages[1].Content, "Relevant memory:\n"))
	assert.Contains(t, messages[1].Content, "Fact: The user's name is John")
}

func TestProcessMessageEmptyInput(t *testing.T) {
	agent, err := New(&llm.MockProvider{}, newTestStore(t))
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(), "   ")
	assert.Error(t, err)
}

func TestProcessMessageFailureStoresNoInteraction(t *testing.T) {
	store := newTestStore(t)
	provider := &llm.MockProvider{
		CompleteFunc: func(_ context.Context, _ []*types.Message) (*types.Message, error) {
			return nil, errors.New("connection refused")
		},
	}

	agent, err := New(provider, store, WithSeedFacts(nil))
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(), "Hello")
	assert.Error(t, err)
	assert.Empty(t, store.Interactions())
}

func TestProcessMessageTeachesFact(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(), "Remember that Python is a programming language")
	require.NoError(t, err)

	facts := store.Facts()
	require.Len(t, facts, 1)
	assert.Equal(t, "Python is a programming language", facts[0].Text)
	assert.Equal(t, "fact", facts[0].Category)

	// Teach turns still get a completion and an interaction record.
	assert.Len(t, store.Interactions(), 1)
}

func TestProcessMessageTeachesProcedure(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(),
		"Remember the steps for making coffee: boil water, add coffee, stir")
	require.NoError(t, err)

	procedures := store.Procedures()
	proc, ok := procedures["making coffee"]
	require.True(t, ok, "expected procedure 'making coffee', got %v", procedures)
	assert.Equal(t, "Steps for making coffee", proc.Description)
	assert.Equal(t, []string{"1. boil water", "2. add coffee", "3. stir"}, proc.Steps)
}

func TestProcessMessageMalformedTeachIsNoOp(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	reply, err := agent.ProcessMessage(context.Background(),
		"Remember the procedure making coffee without a colon")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	assert.Empty(t, store.Procedures())
	// The turn itself still completes normally.
	assert.Len(t, store.Interactions(), 1)
}

func TestNote(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	agent.Note("User is in a hurry", 0.8)

	entries := store.ShortTerm()
	require.Len(t, entries, 1)
	assert.Equal(t, "User is in a hurry", entries[0].Content)
	assert.Equal(t, 0.8, entries[0].Importance)
}

func TestNoteDefaultImportance(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	agent.Note("Something relevant", 0)

	entries := store.ShortTerm()
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultImportance, entries[0].Importance)
}

func TestNoteEmptyContentIgnored(t *testing.T) {
	store := newTestStore(t)
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil))
	require.NoError(t, err)

	agent.Note("   ", 0.5)

	assert.Empty(t, store.ShortTerm())
}

func TestWithCommands(t *testing.T) {
	store := newTestStore(t)
	custom := Commands{
		FactTriggers:      []string{"note down that"},
		ProcedureTriggers: []string{"learn the routine"},
	}
	agent, err := New(&llm.MockProvider{}, store, WithSeedFacts(nil), WithCommands(custom))
	require.NoError(t, err)

	_, err = agent.ProcessMessage(context.Background(), "Note down that Go compiles fast")
	require.NoError(t, err)
	require.Len(t, store.Facts(), 1)
	assert.Equal(t, "Go compiles fast", store.Facts()[0].Text)

	// Default triggers no longer apply.
	_, err = agent.ProcessMessage(context.Background(), "Remember that this should not be stored")
	require.NoError(t, err)
	assert.Len(t, store.Facts(), 1)
}
