package memory

import (
	"sort"
	"strings"
)

// searchKeywords scores items by how many query terms occur as substrings
// of the extracted content, case-insensitively. Terms are the
// whitespace-split query; a term repeated in the query counts once per
// occurrence in the query. Zero-score items are excluded, remaining items
// are ordered by descending score with scan-order ties preserved, and at
// most limit items are returned.
//
// A query that is empty after trimming returns no results regardless of
// the collection.
func searchKeywords[T any](query string, items []T, extract func(T) string, limit int) []T {
	if strings.TrimSpace(query) == "" {
		return []T{}
	}
	if limit < 0 {
		limit = 0
	}

	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		item  T
		score int
	}
	var results []scored
	for _, item := range items {
		content := strings.ToLower(extract(item))
		score := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				score++
			}
		}
		if score > 0 {
			results = append(results, scored{item: item, score: score})
		}
	}

	// Stable: ties keep the order in which items were scanned. There is
	// deliberately no secondary ranking signal.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]T, len(results))
	for i, r := range results {
		out[i] = r.item
	}
	return out
}

func factContent(f Fact) string {
	return f.Text
}

func procedureContent(p Procedure) string {
	return p.Name + " " + p.Description
}

// interactionContent renders an interaction as searchable text. The
// separator between the user and agent halves is a single space for
// search and a newline for context rendering.
func interactionContent(sep string) func(Interaction) string {
	return func(i Interaction) string {
		return "user: " + i.UserMessage + sep + "agent: " + i.AgentMessage
	}
}
