package eventreg

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/testutils"
)

const (
	catalogPath    = "/api" + backend.PathEvents
	registeredPath = "/api" + backend.PathRegisteredEvents
	registerPath   = "/api" + backend.PathRegisterEvent
)

const catalog = `[
	{"_id":"e1","title":"Go Workshop","category":"Workshops","description":"Learn **Go**","date":"2026-11-02T10:00:00Z","time":"10:00","location":"Lab 1","attendees":3,"capacity":10},
	{"_id":"e2","title":"Hack Night","category":"Hackathons","description":"Build things","date":"2026-11-09","time":"18:00","location":"Hall","attendees":50,"capacity":50},
	{"_id":"e3","title":"Coffee Meetup","category":"Meetups","description":"Chat","date":"soon","time":"09:00","location":"Cafe","attendees":1,"capacity":20}
]`

type fixture struct {
	browser *testutils.Browser
	backend *testutils.FakeBackend
	hub     *feedback.Hub
}

func setup(t *testing.T, fallback registration.Fallback) *fixture {
	t.Helper()
	fb, factory := testutils.NewFakeBackend(t)
	fb.On(catalogPath, http.StatusOK, catalog)
	hub := feedback.NewHub()
	h := NewHandler(Dependencies{
		Backend:   factory,
		Feedback:  hub,
		Publisher: pubsub.Nop{},
		Fallback:  fallback,
	})

	e := testutils.NewEcho(t, nil)
	e.GET("/events", h.Get)
	e.POST("/events/register", h.Register)

	b := testutils.NewBrowser(t, e)
	b.SignIn()
	return &fixture{browser: b, backend: fb, hub: hub}
}

func htmxGet(b *testutils.Browser, path string) string {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("HX-Request", "true")
	return b.Do(req).Body.String()
}

func TestGet(t *testing.T) {
	t.Run("renders every upcoming card", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)

		rec := f.browser.Get("/events")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Go Workshop")
		assert.Contains(t, body, "Hack Night")
		assert.Contains(t, body, "Coffee Meetup")
		assert.Contains(t, body, "<strong>Go</strong>")
		assert.Contains(t, body, "Date: 2026-11-02")
		assert.Contains(t, body, "Date: soon")
		assert.Contains(t, body, "Attendees: 3/10")
	})

	t.Run("full events render a disabled Full control", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)

		body := f.browser.Get("/events").Body.String()

		card := cardHTML(t, body, "e2")
		assert.Contains(t, card, "disabled")
		assert.Contains(t, card, ">Full<")
		assert.NotContains(t, card, "/events/register")
	})

	t.Run("registered events read Registered", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[{"_id":"e1","title":"Go Workshop"}]}`)

		body := f.browser.Get("/events").Body.String()
		assert.Contains(t, cardHTML(t, body, "e1"), ">Registered<")
		assert.Contains(t, cardHTML(t, body, "e3"), "/events/register")
	})

	t.Run("htmx filter re-renders the list from the mounted view", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)
		f.browser.Get("/events")

		body := htmxGet(f.browser, "/events?search=HACK&category=All")

		assert.Contains(t, body, `id="events-list"`)
		assert.Contains(t, body, "Hack Night")
		assert.NotContains(t, body, "Go Workshop")
		assert.NotContains(t, body, "<html")
		assert.Equal(t, 1, f.backend.Count(catalogPath))
	})

	t.Run("htmx filter without a mounted view mounts and returns only the list", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)

		body := htmxGet(f.browser, "/events?search=HACK&category=All")

		assert.Contains(t, body, `id="events-list"`)
		assert.Contains(t, body, "Hack Night")
		assert.NotContains(t, body, "<html")
		assert.Equal(t, 1, f.backend.Count(catalogPath))

		htmxGet(f.browser, "/events?search=go")
		assert.Equal(t, 1, f.backend.Count(catalogPath), "second request reuses the view")
	})

	t.Run("category filter", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)

		body := f.browser.Get("/events?category=Meetups").Body.String()
		assert.Contains(t, body, "Coffee Meetup")
		assert.NotContains(t, body, "Go Workshop")
	})

	t.Run("registered tab lists the registered events", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[{"_id":"e9","title":"Past Talk"}]}`)

		body := f.browser.Get("/events?tab=registered").Body.String()
		assert.Contains(t, body, "Past Talk")
		assert.NotContains(t, body, "Coffee Meetup")
	})

	t.Run("failed catalog fetch renders an empty list", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(catalogPath, http.StatusInternalServerError, `{}`)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)

		body := f.browser.Get("/events").Body.String()
		assert.Contains(t, body, "No events to display.")
	})

	t.Run("failed status check can surface as unknown", func(t *testing.T) {
		f := setup(t, registration.FallbackUnknown)
		f.backend.On(registeredPath, http.StatusBadGateway, `{}`)

		body := f.browser.Get("/events").Body.String()
		assert.Contains(t, body, "Registration status unavailable")
	})
}

func TestRegister(t *testing.T) {
	t.Run("success bumps attendees and marks the card registered", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)
		f.backend.On(registerPath, http.StatusOK, `{}`)
		f.browser.Get("/events")

		rec := f.browser.HTMX("/events/register", url.Values{"eventId": {"e1"}})

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="event-e1"`)
		assert.Contains(t, body, "Attendees: 4/10")
		assert.Contains(t, body, ">Registered<")
		assert.Contains(t, body, "Successfully registered for the event!")
		assert.Contains(t, body, `hx-swap-oob="true"`)
		assert.JSONEq(t, `{"eventId":"e1"}`, f.backend.Body(registerPath))

		tab := htmxGet(f.browser, "/events?tab=registered")
		assert.Contains(t, tab, "Go Workshop")
	})

	t.Run("failure leaves the card unchanged", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)
		f.backend.On(registerPath, http.StatusBadRequest, `{"message":"Already registered"}`)
		f.browser.Get("/events")

		body := f.browser.HTMX("/events/register", url.Values{"eventId": {"e1"}}).Body.String()

		assert.Contains(t, body, "Attendees: 3/10")
		assert.Contains(t, body, "<span>Already registered</span>")
		assert.Contains(t, body, "/events/register")
	})

	t.Run("fallback failure text", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)
		f.backend.On(registerPath, http.StatusInternalServerError, ``)
		f.browser.Get("/events")

		body := f.browser.HTMX("/events/register", url.Values{"eventId": {"e3"}}).Body.String()
		assert.Contains(t, body, "Error registering for event")
	})

	t.Run("missing event id sends nothing", func(t *testing.T) {
		f := setup(t, registration.FallbackNotRegistered)
		f.backend.On(registeredPath, http.StatusOK, `{"events":[]}`)
		f.browser.Get("/events")

		rec := f.browser.HTMX("/events/register", url.Values{})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, f.backend.Count(registerPath))
	})
}

// cardHTML cuts the markup of one event card out of a page.
func cardHTML(t *testing.T, body, eventID string) string {
	t.Helper()
	start := strings.Index(body, `id="event-`+eventID+`"`)
	require.GreaterOrEqual(t, start, 0, "card %s not rendered", eventID)
	rest := body[start:]
	if end := strings.Index(rest[1:], `id="event-`); end >= 0 {
		return rest[:end+1]
	}
	return rest
}
