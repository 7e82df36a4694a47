package memory

import (
	"fmt"
	"strings"
)

// Section labels of the assembled context string. Always emitted, even
// when a section has no entries.
const (
	interactionsLabel = "Recent interactions: "
	factsLabel        = "Facts: "
	proceduresLabel   = "Procedures: "
	shortTermLabel    = "Recent memory with current context sorted by importance and timestamp: "
)

// BuildContext composes the prompt-ready context string for a query: the
// most recent interactions, the top-matching facts and procedures, and
// all short-term entries sorted by importance. The four labeled sections
// appear in that fixed order joined by newlines, and the result is
// trimmed of surrounding whitespace.
//
// When the store was opened with a token budget, the assembled string is
// truncated to that budget before being returned.
func (s *Store) BuildContext(query string, limit int) string {
	var b strings.Builder

	renderInteraction := interactionContent("\n")
	recent := make([]string, 0, limit)
	for _, i := range s.RecentInteractions(limit) {
		recent = append(recent, renderInteraction(i))
	}
	b.WriteString(interactionsLabel)
	b.WriteString(strings.Join(recent, "\n"))
	b.WriteString("\n")

	facts := make([]string, 0, limit)
	for _, f := range s.SearchFacts(query, limit) {
		facts = append(facts, "Fact: "+f.Text)
	}
	b.WriteString(factsLabel)
	b.WriteString(strings.Join(facts, "\n"))
	b.WriteString("\n")

	var procedures []string
	for i, p := range s.SearchProcedures(query, limit) {
		procedures = append(procedures, fmt.Sprintf(
			"Procedure %d. %s: %s\nProcedure's Steps: \n%s",
			i+1, p.Name, p.Description, strings.Join(p.Steps, "\n"),
		))
	}
	b.WriteString(proceduresLabel)
	b.WriteString(strings.Join(procedures, "\n"))
	b.WriteString("\n")

	var shortTerm []string
	for _, e := range s.SortedShortTerm() {
		shortTerm = append(shortTerm, "Short term memory: "+e.Content)
	}
	b.WriteString(shortTermLabel)
	b.WriteString(strings.Join(shortTerm, "\n"))

	context := strings.TrimSpace(b.String())

	if s.tokenCounter != nil && s.tokenBudget > 0 && s.tokenCounter.Count(context) > s.tokenBudget {
		context = strings.TrimSpace(s.tokenCounter.Truncate(context, s.tokenBudget))
	}

	return context
}
