package registration

import "github.com/nfrund/clubportal/internal/backend"

// ByteEndpoint is the BYTE class registration: one domain per identity,
// verified once payment is confirmed.
func ByteEndpoint() Endpoint[backend.ByteRegistration] {
	return Endpoint[backend.ByteRegistration]{
		Name:       "byte",
		StatusPath: backend.PathByteStatus,
		SubmitPath: backend.PathByteRegister,
		Decode: func(r backend.ByteRegistration) []Status {
			return []Status{StatusOf(r.Registered, r.Domain, r.PaymentVerified)}
		},
		Body: func(domain string) any {
			return backend.RegisterByteRequest{Domain: domain}
		},
		SuccessText: "Registration successful",
		FailureText: "Registration failed",
	}
}

// EventsEndpoint is event registration: any number of events per identity.
// Event registrations carry no verification step.
func EventsEndpoint() Endpoint[backend.RegisteredEventsResponse] {
	return Endpoint[backend.RegisteredEventsResponse]{
		Name:       "events",
		StatusPath: backend.PathRegisteredEvents,
		SubmitPath: backend.PathRegisterEvent,
		Decode: func(r backend.RegisteredEventsResponse) []Status {
			out := make([]Status, 0, len(r.Events))
			for _, ev := range r.Events {
				out = append(out, StatusOf(true, ev.ID, false))
			}
			return out
		},
		Body: func(eventID string) any {
			return backend.RegisterEventRequest{EventID: eventID}
		},
		SuccessText: "Successfully registered for the event!",
		FailureText: "Error registering for event",
	}
}
