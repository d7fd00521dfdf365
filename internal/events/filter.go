// Package events holds the pure helpers the events page applies to the
// catalog: search and category filtering, capacity checks and the local
// attendee bump after a successful registration.
package events

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/nfrund/clubportal/internal/backend"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// Categories are the selector options offered by the events page.
var Categories = []string{CategoryAll, "Workshops", "Hackathons", "Meetups"}

// Filter returns the events whose title, description or location contains
// search case-insensitively, whitespace included, and whose category equals
// category. Only an empty search matches every event. An empty
// category or CategoryAll matches every category. The input order is kept and
// the input slice is not modified.
func Filter(list []backend.EventSummary, search, category string) []backend.EventSummary {
	fold := cases.Fold()
	needle := fold.String(search)
	anyCategory := category == "" || category == CategoryAll

	out := make([]backend.EventSummary, 0, len(list))
	for _, ev := range list {
		if !anyCategory && ev.Category != category {
			continue
		}
		if needle != "" && !matches(fold, ev, needle) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func matches(fold cases.Caser, ev backend.EventSummary, needle string) bool {
	for _, field := range []string{ev.Title, ev.Description, ev.Location} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
