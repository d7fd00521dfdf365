package domain

import "errors"

// Sentinel errors for the portal. These provide consistent, checkable
// errors for failures that are decided before or without the backend.
var (
	// ErrEmptySubject is returned when a registration is submitted without a
	// domain or event selected. No request is sent.
	ErrEmptySubject = errors.New("nothing selected to register for")

	// ErrNotSignedIn is returned when a page needs a backend credential and the
	// portal session carries none.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrViewNotFound is returned when a fragment request references a view
	// that was torn down or never mounted.
	ErrViewNotFound = errors.New("view not found")
)
