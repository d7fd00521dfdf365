package events

import (
	"time"

	"github.com/nfrund/clubportal/internal/backend"
)

// IsFull reports whether no seats are left. The backend does not guarantee
// attendees <= capacity, so anything at or over capacity is full.
func IsFull(ev backend.EventSummary) bool {
	return ev.Attendees >= ev.Capacity
}

// FillPercent is the attendance progress in [0, 100].
func FillPercent(ev backend.EventSummary) int {
	if ev.Capacity <= 0 {
		return 100
	}
	pct := ev.Attendees * 100 / ev.Capacity
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Bump returns a copy of list with one more attendee on the event with id.
// It reflects a successful registration until the next fetch.
func Bump(list []backend.EventSummary, id string) []backend.EventSummary {
	out := make([]backend.EventSummary, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Attendees++
		}
	}
	return out
}

// Find returns the event with id.
func Find(list []backend.EventSummary, id string) (backend.EventSummary, bool) {
	for _, ev := range list {
		if ev.ID == id {
			return ev, true
		}
	}
	return backend.EventSummary{}, false
}

// DisplayDate renders the backend date as YYYY-MM-DD. Values that are not
// RFC 3339 timestamps are shown as they came.
func DisplayDate(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(time.DateOnly)
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.Format(time.DateOnly)
	}
	return raw
}

// PinFirst returns a copy of list with the events titled title moved to the
// front. The relative order of everything else is kept.
func PinFirst(list []backend.EventSummary, title string) []backend.EventSummary {
	out := make([]backend.EventSummary, 0, len(list))
	for _, ev := range list {
		if ev.Title == title {
			out = append(out, ev)
		}
	}
	for _, ev := range list {
		if ev.Title != title {
			out = append(out, ev)
		}
	}
	return out
}
