package bytereg

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
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

// page is the view and feedback key suffix of the BYTE page.
const page = "byte"

// Domains are the BYTE tracks a member can register for.
var Domains = []dto.DomainOption{
	{Value: "webdev", Label: "Web Development"},
	{Value: "backend", Label: "Backend Development"},
	{Value: "react", Label: "React Development"},
	{Value: "ml", Label: "Machine Learning"},
}

// Dependencies holds what the BYTE handler needs.
type Dependencies struct {
	Backend   *backend.Factory
	Feedback  *feedback.Hub
	Publisher pubsub.Publisher
	Fallback  registration.Fallback
}

type viewState struct {
	snapshot registration.Snapshot
	selected string
}

// Handler serves the BYTE registration page.
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

func (h *Handler) flow(id *identity.Identity) *registration.Flow[backend.ByteRegistration] {
	return registration.NewFlow(
		registration.ByteEndpoint(),
		h.deps.Backend.For(id.User),
		registration.WithFallback(h.deps.Fallback),
		registration.WithPublisher(h.deps.Publisher, id.ViewID),
	)
}

// mount fetches the status and mounts a fresh view.
func (h *Handler) mount(c echo.Context, id *identity.Identity) (viewState, *feedback.Channel) {
	_, snap := h.flow(id).Fetch(c.Request().Context())
	key := viewstate.Key(id.ViewID, page)
	state := viewState{snapshot: snap}
	h.views.Mount(key, state)
	return state, h.deps.Feedback.Open(feedback.Key(id.ViewID, page))
}

// Get mounts the BYTE page (GET /byte-register).
func (h *Handler) Get(c echo.Context) error {
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}
	state, ch := h.mount(c, id)
	handlers.SaveIdentity(c, id)

	chrome := handlers.NewChrome(c, "BYTE Registration", dto.NavByte)
	return handlers.Page(c, http.StatusOK, chrome, pages.Byte(chrome.CSRFToken, h.pageData(state, ch)))
}

// Post submits the selected domain (POST /byte-register). htmx requests get
// the card and the feedback slot back; plain form posts get the whole page.
func (h *Handler) Post(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req handlers.RegisterByteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}

	key := viewstate.Key(id.ViewID, page)
	state, mounted := h.views.Get(key)
	ch, _ := h.deps.Feedback.Get(feedback.Key(id.ViewID, page))
	if !mounted || ch == nil {
		state, ch = h.mount(c, id)
	}

	next, msg, err := h.flow(id).Submit(ctx, state.snapshot, req.Domain)
	switch {
	case errors.Is(err, registration.ErrEmptySubject):
		// Nothing was sent; the view stays as it is.
	case err != nil:
		return err
	default:
		state, err = h.views.Update(key, func(s *viewState) {
			s.snapshot = next
			s.selected = req.Domain
		})
		if err != nil {
			middleware.FromContext(ctx).Warn("BYTE view torn down during submit", "error", err)
			state = viewState{snapshot: next, selected: req.Domain}
		}
		ch.Show(msg)
	}
	handlers.SaveIdentity(c, id)

	data := h.pageData(state, ch)
	if middleware.IsHTMX(c) {
		csrf := middleware.CSRFToken(c)
		return handlers.Fragment(c, http.StatusOK, pages.ByteCard(csrf, data), partials.FeedbackOOB(data.Feedback))
	}
	chrome := handlers.NewChrome(c, "BYTE Registration", dto.NavByte)
	return handlers.Page(c, http.StatusOK, chrome, pages.Byte(chrome.CSRFToken, data))
}

func (h *Handler) pageData(state viewState, ch *feedback.Channel) dto.BytePage {
	return dto.BytePage{
		Status:   state.snapshot.Primary(),
		Selected: state.selected,
		Domains:  Domains,
		Feedback: handlers.FeedbackView(page, ch),
	}
}
