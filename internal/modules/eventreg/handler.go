package eventreg

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/events"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/identity"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/internal/viewstate"
	"github.com/nfrund/clubportal/web/src/templates/pages"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

const page = "events"

// Dependencies holds what the events handler needs.
type Dependencies struct {
	Backend   *backend.Factory
	Feedback  *feedback.Hub
	Publisher pubsub.Publisher
	Fallback  registration.Fallback
}

// viewState is what one mounted events page remembers between requests.
type viewState struct {
	catalog    []backend.EventSummary
	registered []backend.EventSummary
	snapshot   registration.Snapshot
}

// Handler serves the events page.
type Handler struct {
	deps  Dependencies
	views *viewstate.Store[viewState]
}

// NewHandler creates a new Handler. Tearing down a view closes its feedback channel.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		deps:  deps,
		views: viewstate.New[viewState](deps.Feedback.Close),
	}
}

func (h *Handler) flow(id *identity.Identity) *registration.Flow[backend.RegisteredEventsResponse] {
	return registration.NewFlow(
		registration.EventsEndpoint(),
		h.deps.Backend.For(id.User),
		registration.WithFallback(h.deps.Fallback),
		registration.WithPublisher(h.deps.Publisher, id.ViewID),
	)
}

// mount fetches the catalog and the registered events and mounts a fresh view.
// A failed catalog fetch leaves the list empty.
func (h *Handler) mount(c echo.Context, id *identity.Identity) (viewState, *feedback.Channel) {
	ctx := c.Request().Context()
	catalog, err := h.deps.Backend.For(id.User).Events(ctx)
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed to fetch events", "error", err)
		catalog = nil
	}
	resp, snap := h.flow(id).Fetch(ctx)

	state := viewState{catalog: catalog, registered: resp.Events, snapshot: snap}
	h.views.Mount(viewstate.Key(id.ViewID, page), state)
	return state, h.deps.Feedback.Open(feedback.Key(id.ViewID, page))
}

// Get renders the events page (GET /events). htmx requests from the filter
// form and the tabs re-render the list from the mounted view without calling
// the backend again, and get only the list even when no view was mounted.
func (h *Handler) Get(c echo.Context) error {
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}
	var q handlers.EventsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query").SetInternal(err)
	}

	if middleware.IsHTMX(c) {
		if state, ok := h.views.Get(viewstate.Key(id.ViewID, page)); ok {
			ch, _ := h.deps.Feedback.Get(feedback.Key(id.ViewID, page))
			data := pageData(q, state, ch)
			return handlers.Fragment(c, http.StatusOK, pages.EventsList(middleware.CSRFToken(c), data))
		}
	}

	state, ch := h.mount(c, id)
	handlers.SaveIdentity(c, id)

	if middleware.IsHTMX(c) {
		return handlers.Fragment(c, http.StatusOK, pages.EventsList(middleware.CSRFToken(c), pageData(q, state, ch)))
	}

	chrome := handlers.NewChrome(c, "Events", dto.NavEvents)
	return handlers.Page(c, http.StatusOK, chrome, pages.Events(chrome.CSRFToken, pageData(q, state, ch)))
}

// Register registers the member for one event (POST /events/register). On
// success the card shows one more attendee and reads "Registered" until the
// next mount.
func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req handlers.RegisterEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}

	key := viewstate.Key(id.ViewID, page)
	state, mounted := h.views.Get(key)
	ch, _ := h.deps.Feedback.Get(feedback.Key(id.ViewID, page))
	if !mounted || ch == nil {
		state, ch = h.mount(c, id)
	}

	next, msg, err := h.flow(id).Submit(ctx, state.snapshot, req.EventID)
	switch {
	case errors.Is(err, registration.ErrEmptySubject):
		// Nothing was sent.
	case err != nil:
		return err
	default:
		if msg.Severity == feedback.SeveritySuccess {
			state = h.applyRegistration(key, state, next, req.EventID)
		}
		ch.Show(msg)
	}
	handlers.SaveIdentity(c, id)

	data := pageData(handlers.EventsQuery{}, state, ch)
	if middleware.IsHTMX(c) {
		csrf := middleware.CSRFToken(c)
		if ev, ok := events.Find(state.catalog, req.EventID); ok {
			return handlers.Fragment(c, http.StatusOK,
				pages.EventCard(csrf, toCard(ev, state.snapshot), true),
				partials.FeedbackOOB(data.Feedback),
			)
		}
		return handlers.Fragment(c, http.StatusOK, partials.FeedbackOOB(data.Feedback))
	}
	chrome := handlers.NewChrome(c, "Events", dto.NavEvents)
	return handlers.Page(c, http.StatusOK, chrome, pages.Events(chrome.CSRFToken, data))
}

// applyRegistration records a successful registration on the mounted view.
func (h *Handler) applyRegistration(key string, state viewState, next registration.Snapshot, eventID string) viewState {
	apply := func(s *viewState) {
		s.snapshot = next
		s.catalog = events.Bump(s.catalog, eventID)
		if _, already := events.Find(s.registered, eventID); !already {
			if ev, ok := events.Find(s.catalog, eventID); ok {
				s.registered = append(append([]backend.EventSummary(nil), s.registered...), ev)
			}
		}
	}
	updated, err := h.views.Update(key, apply)
	if err != nil {
		// The view was dropped mid-request; render the result anyway.
		apply(&state)
		return state
	}
	return updated
}

func pageData(q handlers.EventsQuery, state viewState, ch *feedback.Channel) dto.EventsPage {
	tab := q.Tab
	switch tab {
	case dto.TabUpcoming, dto.TabRegistered, dto.TabPast:
	default:
		tab = dto.TabUpcoming
	}
	category := q.Category
	if category == "" {
		category = events.CategoryAll
	}

	return dto.EventsPage{
		Tab:         tab,
		Search:      q.Search,
		Category:    category,
		Categories:  events.Categories,
		Cards:       toCards(events.Filter(state.catalog, q.Search, category), state.snapshot),
		Registered:  toCards(events.Filter(state.registered, q.Search, category), state.snapshot),
		StatusKnown: state.snapshot.Known(),
		Feedback:    handlers.FeedbackView(page, ch),
	}
}

func toCards(list []backend.EventSummary, snap registration.Snapshot) []dto.EventCard {
	out := make([]dto.EventCard, 0, len(list))
	for _, ev := range list {
		out = append(out, toCard(ev, snap))
	}
	return out
}

func toCard(ev backend.EventSummary, snap registration.Snapshot) dto.EventCard {
	return dto.EventCard{
		ID:          ev.ID,
		Title:       ev.Title,
		Category:    ev.Category,
		Description: ev.Description,
		Date:        events.DisplayDate(ev.Date),
		Time:        ev.Time,
		Location:    ev.Location,
		Attendees:   ev.Attendees,
		Capacity:    ev.Capacity,
		Percent:     events.FillPercent(ev),
		Full:        events.IsFull(ev),
		Registered:  snap.For(ev.ID).Registered(),
	}
}
