package memory

import (
	"sort"

	"github.com/entrhq/mnemo/pkg/logging"
)

var memLog *logging.Logger

func init() {
	var err error
	memLog, err = logging.NewLogger("memory")
	if err != nil {
		memLog.Warnf("failed to initialize memory logger, using stderr fallback: %v", err)
	}
}

// Collection file names inside the storage root.
const (
	factsFile        = "facts.json"
	proceduresFile   = "procedures.json"
	interactionsFile = "interactions.json"
	shortTermFile    = "short_term_memory.json"
)

// TokenCounter counts and truncates text in model tokens. It is satisfied
// by the tokenizer package; the store only needs it when a context token
// budget is configured.
type TokenCounter interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

// Store owns the four memory collections. Every mutating operation
// rewrites the affected collection file synchronously before returning;
// write failures are logged and the in-memory collection remains
// authoritative. The store assumes a single process and a single
// goroutine per storage root.
type Store struct {
	root string

	facts        []Fact
	procedures   map[string]Procedure
	interactions []Interaction
	shortTerm    []ShortTermEntry

	tokenCounter TokenCounter
	tokenBudget  int
}

// Option configures a Store.
type Option func(*Store)

// WithTokenBudget caps BuildContext output at maxTokens tokens, measured
// by the given counter. Without this option context strings are returned
// untruncated.
func WithTokenBudget(counter TokenCounter, maxTokens int) Option {
	return func(s *Store) {
		s.tokenCounter = counter
		s.tokenBudget = maxTokens
	}
}

// Open creates the storage root if needed and loads all four collections.
// Missing files yield empty collections; malformed files are logged and
// treated as empty.
func Open(root string, opts ...Option) (*Store, error) {
	if err := ensureDir(root); err != nil {
		return nil, err
	}

	s := &Store{
		root:         root,
		facts:        []Fact{},
		procedures:   map[string]Procedure{},
		interactions: []Interaction{},
		shortTerm:    []ShortTermEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}

	loadCollection(root, factsFile, &s.facts)
	loadCollection(root, proceduresFile, &s.procedures)
	loadCollection(root, interactionsFile, &s.interactions)
	loadCollection(root, shortTermFile, &s.shortTerm)

	// A malformed file can decode to a JSON null, leaving the collection
	// nil. The store guarantees empty, never nil.
	if s.facts == nil {
		s.facts = []Fact{}
	}
	if s.procedures == nil {
		s.procedures = map[string]Procedure{}
	}
	if s.interactions == nil {
		s.interactions = []Interaction{}
	}
	if s.shortTerm == nil {
		s.shortTerm = []ShortTermEntry{}
	}

	return s, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// AddFact appends a fact and persists the facts collection. Text and
// category are stored as given; validation belongs to the command layer.
func (s *Store) AddFact(text, category string) {
	s.facts = append(s.facts, Fact{
		Text:      text,
		Category:  category,
		Timestamp: now(),
	})
	_ = saveCollection(s.root, factsFile, s.facts)
}

// AddProcedure inserts or overwrites the procedure with the given name and
// persists the procedures collection. Re-teaching a name replaces its
// description, steps, and timestamp.
func (s *Store) AddProcedure(name string, steps []string, description string) {
	s.procedures[name] = Procedure{
		Name:        name,
		Description: description,
		Steps:       steps,
		Timestamp:   now(),
	}
	_ = saveCollection(s.root, proceduresFile, s.procedures)
}

// AddInteraction appends a user/agent exchange and persists the
// interactions collection.
func (s *Store) AddInteraction(userMessage, agentMessage string, metadata map[string]interface{}) {
	s.interactions = append(s.interactions, Interaction{
		UserMessage:  userMessage,
		AgentMessage: agentMessage,
		Metadata:     metadata,
		Timestamp:    now(),
	})
	_ = saveCollection(s.root, interactionsFile, s.interactions)
}

// AddShortTerm appends a short-term note and persists the short-term
// collection. The collection is not trimmed to DefaultShortTermLimit.
func (s *Store) AddShortTerm(content string, importance float64) {
	s.shortTerm = append(s.shortTerm, ShortTermEntry{
		Content:    content,
		Importance: importance,
		Timestamp:  now(),
	})
	_ = saveCollection(s.root, shortTermFile, s.shortTerm)
}

// SearchFacts returns up to limit facts ranked by query-term matches.
func (s *Store) SearchFacts(query string, limit int) []Fact {
	return searchKeywords(query, s.facts, factContent, limit)
}

// SearchProcedures returns up to limit procedures ranked by query-term
// matches against name and description. Procedures are scanned in
// lexicographic name order so tie-breaking is deterministic.
func (s *Store) SearchProcedures(query string, limit int) []Procedure {
	return searchKeywords(query, s.proceduresInOrder(), procedureContent, limit)
}

// SearchInteractions returns up to limit interactions ranked by query-term
// matches against the rendered "user: ... agent: ..." text.
func (s *Store) SearchInteractions(query string, limit int) []Interaction {
	return searchKeywords(query, s.interactions, interactionContent(" "), limit)
}

// RecentInteractions returns the last limit interactions in insertion
// order. Fewer than limit stored means all of them.
func (s *Store) RecentInteractions(limit int) []Interaction {
	if limit < 0 {
		limit = 0
	}
	start := len(s.interactions) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Interaction, len(s.interactions)-start)
	copy(out, s.interactions[start:])
	return out
}

// SortedShortTerm returns all short-term entries ordered by importance
// descending, with newer timestamps first among equal importance. The
// stored order is not mutated.
func (s *Store) SortedShortTerm() []ShortTermEntry {
	out := make([]ShortTermEntry, len(s.shortTerm))
	copy(out, s.shortTerm)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		// TimestampLayout is fixed-width, so string comparison is
		// chronological.
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Facts returns the facts collection in insertion order.
func (s *Store) Facts() []Fact {
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Procedures returns the procedures keyed by name.
func (s *Store) Procedures() map[string]Procedure {
	out := make(map[string]Procedure, len(s.procedures))
	for k, v := range s.procedures {
		out[k] = v
	}
	return out
}

// Interactions returns the interactions collection in insertion order.
func (s *Store) Interactions() []Interaction {
	out := make([]Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out
}

// ShortTerm returns the short-term collection in insertion order.
func (s *Store) ShortTerm() []ShortTermEntry {
	out := make([]ShortTermEntry, len(s.shortTerm))
	copy(out, s.shortTerm)
	return out
}

// ShortTermLimit reports the advisory short-term capacity.
func (s *Store) ShortTermLimit() int {
	return DefaultShortTermLimit
}

func (s *Store) proceduresInOrder() []Procedure {
	names := make([]string, 0, len(s.procedures))
	for name := range s.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Procedure, 0, len(names))
	for _, name := range names {
		out = append(out, s.procedures[name])
	}
	return out
}
