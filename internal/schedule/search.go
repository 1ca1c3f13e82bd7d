package schedule

import (
	"strings"
)

// DefaultSearchLimit caps the number of suggestions returned by Search.
const DefaultSearchLimit = 5

// SearchResult holds the suggestions for a query.
type SearchResult struct {
	Query       string   `json:"query" yaml:"query"`
	Total       int      `json:"total" yaml:"total"`
	Suggestions []Record `json:"suggestions" yaml:"suggestions"`
	// Exact is set when the query equals a course name, code or title.
	Exact *Record `json:"exact,omitempty" yaml:"exact,omitempty"`
}

// Search matches query against course names, codes and titles
// (case-insensitive substring). Results keep record order, hold one entry
// per course name, and are capped at limit.
func Search(records []Record, query string, limit int) SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	res := SearchResult{Query: query}
	if q == "" {
		return res
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	seen := make(map[string]bool)
	var unique []Record
	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.Course), q) &&
			!strings.Contains(strings.ToLower(r.Code), q) &&
			!strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		key := strings.ToLower(r.Course)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}

	res.Total = len(unique)
	for i := range unique {
		r := unique[i]
		if strings.ToLower(r.Course) == q || strings.ToLower(r.Code) == q || strings.ToLower(r.Title) == q {
			res.Exact = &r
			break
		}
	}
	if len(unique) > limit {
		unique = unique[:limit]
	}
	res.Suggestions = unique
	return res
}
