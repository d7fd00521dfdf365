// Package dto holds the view models the page components render. Handlers
// build them from backend data and the in-memory view state.
package dto

import (
	"time"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/view"
)

// Nav entries, matched against Chrome.Active.
const (
	NavHome    = "home"
	NavByte    = "byte"
	NavEvents  = "events"
	NavProfile = "profile"
	NavAdmin   = "admin"
)

// Chrome is what the base layout needs from every page.
type Chrome struct {
	Title     string
	Active    string
	CSRFToken string
	SignedIn  bool
	Admin     bool
	Flash     view.FlashData
}

// Feedback is the render model of a feedback channel.
type Feedback struct {
	// Page is the page segment of the feedback endpoints (/feedback/:page).
	Page     string
	Visible  bool
	Text     string
	Severity string
	TTL      time.Duration
}

// LoginForm re-populates the login form after a failed attempt.
type LoginForm struct {
	Email string
	Error string
}

// SignupForm re-populates the signup form after a failed attempt.
type SignupForm struct {
	Name     string
	Email    string
	Phone    string
	Gender   string
	Semester string
	Class    string
	Error    string
}

// DomainOption is one entry of the BYTE domain selector.
type DomainOption struct {
	Value string
	Label string
}

// BytePage is the BYTE registration page.
type BytePage struct {
	Status   registration.Status
	Selected string
	Domains  []DomainOption
	Feedback Feedback
}

// EventCard is one event as the events page shows it.
type EventCard struct {
	ID          string
	Title       string
	Category    string
	Description string
	Date        string
	Time        string
	Location    string
	Attendees   int
	Capacity    int
	Percent     int
	Full        bool
	Registered  bool
}

// Events page tabs.
const (
	TabUpcoming   = "upcoming"
	TabRegistered = "registered"
	TabPast       = "past"
)

// EventsPage is the events catalog.
type EventsPage struct {
	Tab        string
	Search     string
	Category   string
	Categories []string
	Cards      []EventCard
	Registered []EventCard
	// StatusKnown is false when the registration check failed and the portal
	// was configured to say so.
	StatusKnown bool
	Feedback    Feedback
}

// ProfilePage is the signed-in user's profile.
type ProfilePage struct {
	Found    bool
	Profile  backend.UserProfile
	Initials string
}

// AdminLoginForm re-populates the admin login form.
type AdminLoginForm struct {
	Email string
	Error string
}

// Dashboard is the admin dashboard bundle.
type Dashboard struct {
	Loaded     bool
	Stats      backend.DashboardStats
	Upcoming   []backend.UpcomingEvent
	Attendance []backend.AttendanceRecord
	Members    []backend.Member
}
