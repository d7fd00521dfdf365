package registration

import (
	"fmt"

	"github.com/nfrund/clubportal/internal/config"
)

// Mode is the UI mode a registration status maps to.
type Mode int

const (
	// ModeUnknown means the status check failed and the portal was told not to guess.
	ModeUnknown Mode = iota
	ModeNotRegistered
	// ModePending is registered but not yet verified.
	ModePending
	ModeVerified
)

func (m Mode) String() string {
	switch m {
	case ModeNotRegistered:
		return "not_registered"
	case ModePending:
		return "pending"
	case ModeVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Status is the registration state of one subject (a BYTE domain or an event id).
type Status struct {
	Mode    Mode
	Subject string
}

// StatusOf builds a Status from the backend's flags. Verified without
// registered collapses to not registered.
func StatusOf(registered bool, subject string, verified bool) Status {
	switch {
	case !registered:
		return Status{Mode: ModeNotRegistered, Subject: subject}
	case verified:
		return Status{Mode: ModeVerified, Subject: subject}
	default:
		return Status{Mode: ModePending, Subject: subject}
	}
}

// Pending is the optimistic status after a successful submission.
func Pending(subject string) Status {
	return Status{Mode: ModePending, Subject: subject}
}

// Registered reports whether the subject is registered, verified or not.
func (s Status) Registered() bool {
	return s.Mode == ModePending || s.Mode == ModeVerified
}

// Verified reports whether the registration has been verified.
func (s Status) Verified() bool {
	return s.Mode == ModeVerified
}

// Known reports whether the status reflects a successful check.
func (s Status) Known() bool {
	return s.Mode != ModeUnknown
}

// Fallback decides what a failed status check degrades to.
type Fallback int

const (
	// FallbackNotRegistered treats a failed check as "not registered".
	FallbackNotRegistered Fallback = iota
	// FallbackUnknown surfaces a failed check as an explicit unknown status.
	FallbackUnknown
)

// ParseFallback maps a configuration value to a Fallback.
func ParseFallback(s string) (Fallback, error) {
	switch s {
	case "", config.FallbackNotRegistered:
		return FallbackNotRegistered, nil
	case config.FallbackUnknown:
		return FallbackUnknown, nil
	default:
		return FallbackNotRegistered, fmt.Errorf("unknown status fallback %q", s)
	}
}

func (f Fallback) mode() Mode {
	if f == FallbackUnknown {
		return ModeUnknown
	}
	return ModeNotRegistered
}

// Snapshot is the set of statuses a status check reported, keyed by subject.
// Subjects absent from it take the snapshot's default mode.
type Snapshot struct {
	statuses map[string]Status
	order    []string
	absent   Mode
}

// NewSnapshot builds a snapshot from fetched statuses. Statuses that are not
// registered are not recorded; they are what absence already means.
func NewSnapshot(statuses ...Status) Snapshot {
	snap := Snapshot{absent: ModeNotRegistered}
	for _, st := range statuses {
		if st.Registered() {
			snap = snap.With(st)
		}
	}
	return snap
}

// Degraded is the snapshot a failed check falls back to.
func Degraded(f Fallback) Snapshot {
	return Snapshot{absent: f.mode()}
}

// For returns the status of subject.
func (s Snapshot) For(subject string) Status {
	if st, ok := s.statuses[subject]; ok {
		return st
	}
	return Status{Mode: s.absent, Subject: subject}
}

// Primary returns the first registered status, or the default mode when the
// snapshot records none. Single-subject flows (BYTE) read this.
func (s Snapshot) Primary() Status {
	if len(s.order) > 0 {
		return s.statuses[s.order[0]]
	}
	return Status{Mode: s.absent}
}

// Registered returns the registered statuses in the order they were recorded.
func (s Snapshot) Registered() []Status {
	out := make([]Status, 0, len(s.order))
	for _, subject := range s.order {
		out = append(out, s.statuses[subject])
	}
	return out
}

// Known reports whether the snapshot comes from a successful check.
func (s Snapshot) Known() bool {
	return s.absent != ModeUnknown || len(s.order) > 0
}

// With returns a copy of s with st recorded for its subject. The receiver is
// left untouched so callers can keep the previous snapshot on failure.
func (s Snapshot) With(st Status) Snapshot {
	next := Snapshot{
		statuses: make(map[string]Status, len(s.statuses)+1),
		order:    make([]string, 0, len(s.order)+1),
		absent:   s.absent,
	}
	for _, subject := range s.order {
		next.statuses[subject] = s.statuses[subject]
		next.order = append(next.order, subject)
	}
	if _, exists := next.statuses[st.Subject]; !exists {
		next.order = append(next.order, st.Subject)
	}
	next.statuses[st.Subject] = st
	return next
}
