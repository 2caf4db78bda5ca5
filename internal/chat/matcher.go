package chat

import "strings"

// maxMatches caps how many knowledge records a single query can pull into
// the prompt.
const maxMatches = 3

// Matcher scans the knowledge store for case-insensitive substring matches.
type Matcher struct {
	store *Store
}

func NewMatcher(store *Store) *Matcher {
	return &Matcher{store: store}
}

// Search returns up to 3 records whose text fields contain the query,
// preserving store order. Empty or whitespace-only queries return no
// results rather than trivially matching everything.
func (m *Matcher) Search(query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []Record
	for _, rec := range m.store.All() {
		for _, field := range rec.searchFields() {
			if strings.Contains(strings.ToLower(field), query) {
				results = append(results, rec)
				break
			}
		}
		if len(results) == maxMatches {
			break
		}
	}
	return results
}
