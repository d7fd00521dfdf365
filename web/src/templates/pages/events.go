package pages

import (
	"fmt"
	"net/url"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

// EventsListID is the element the search form and the tabs swap.
const EventsListID = "events-list"

// EventCardID is the element id of one event card.
func EventCardID(eventID string) string {
	return "event-" + eventID
}

// Events is the events catalog page.
func Events(csrfToken string, page dto.EventsPage) cmp.Node {
	return g.Section(
		g.Class("container"),
		partials.Feedback(page.Feedback),
		g.H1(cmp.Text("Events")),
		g.P(g.Class("muted"), cmp.Text("Browse and register for upcoming events")),
		eventsFilter(page),
		EventsList(csrfToken, page),
	)
}

func eventsFilter(page dto.EventsPage) cmp.Node {
	return cmp.El("form",
		g.Class("filters"),
		g.Method("get"),
		g.Action("/events"),
		hx.Get("/events"),
		hx.Target("#"+EventsListID),
		hx.Swap("outerHTML"),
		hx.Trigger("input changed delay:300ms from:input[name=search], change from:select[name=category], submit"),
		g.Input(g.Type("hidden"), g.Name("tab"), g.Value(page.Tab)),
		g.Input(g.Type("search"), g.Name("search"), g.Value(page.Search), g.Placeholder("Search events")),
		g.Select(
			g.Name("category"),
			cmp.Map(page.Categories, func(c string) cmp.Node {
				return option(c, c, page.Category)
			}),
		),
	)
}

// EventsList is the tab strip and the cards of the selected tab.
func EventsList(csrfToken string, page dto.EventsPage) cmp.Node {
	var body cmp.Node
	switch page.Tab {
	case dto.TabRegistered:
		body = eventCards(csrfToken, page.Registered, false)
	case dto.TabPast:
		body = g.P(g.Class("muted"), cmp.Text("These are your past events (demo only)."))
	default:
		body = eventCards(csrfToken, page.Cards, true)
	}
	return g.Div(
		g.ID(EventsListID),
		cmp.If(!page.StatusKnown, partials.Alert("info", "Registration status unavailable")),
		g.Div(
			g.Class("tabs"),
			tabLink(page, dto.TabUpcoming, "Upcoming"),
			tabLink(page, dto.TabRegistered, "Registered"),
			tabLink(page, dto.TabPast, "Past Events"),
		),
		body,
	)
}

func tabLink(page dto.EventsPage, tab, label string) cmp.Node {
	q := url.Values{"tab": {tab}, "search": {page.Search}, "category": {page.Category}}
	href := "/events?" + q.Encode()
	return g.A(
		g.Href(href),
		hx.Get(href),
		hx.Target("#"+EventsListID),
		hx.Swap("outerHTML"),
		cmp.If(page.Tab == tab, g.Class("tab active")),
		cmp.If(page.Tab != tab, g.Class("tab")),
		cmp.Text(label),
	)
}

func eventCards(csrfToken string, cards []dto.EventCard, registrable bool) cmp.Node {
	if len(cards) == 0 {
		return g.P(g.Class("muted"), cmp.Text("No events to display."))
	}
	return g.Div(
		g.Class("grid"),
		cmp.Map(cards, func(card dto.EventCard) cmp.Node {
			return EventCard(csrfToken, card, registrable)
		}),
	)
}

// EventCard renders one event. The register control is disabled and reads
// "Full" once attendance reaches capacity.
func EventCard(csrfToken string, card dto.EventCard, registrable bool) cmp.Node {
	return g.Div(
		g.ID(EventCardID(card.ID)),
		g.Class("card event"),
		g.Div(
			g.Class("card-head"),
			g.H5(cmp.Text(card.Title)),
			g.Span(g.Class("badge"), cmp.Text(card.Category)),
		),
		g.Div(g.Class("description"), view.Markdown(card.Description)),
		g.Ul(
			g.Class("meta"),
			g.Li(cmp.Text("Date: "+card.Date)),
			g.Li(cmp.Text("Time: "+card.Time)),
			g.Li(cmp.Text("Location: "+card.Location)),
			g.Li(cmp.Textf("Attendees: %d/%d", card.Attendees, card.Capacity)),
		),
		cmp.El("progress",
			g.Max("100"),
			g.Value(fmt.Sprint(card.Percent)),
			cmp.Textf("%d%%", card.Percent),
		),
		cmp.If(registrable, registerControl(csrfToken, card)),
	)
}

func registerControl(csrfToken string, card dto.EventCard) cmp.Node {
	switch {
	case card.Registered:
		return g.Button(g.Class("btn btn-secondary wide"), g.Disabled(), cmp.Text("Registered"))
	case card.Full:
		return g.Button(g.Class("btn btn-secondary wide"), g.Disabled(), cmp.Text("Full"))
	}
	return cmp.El("form",
		g.Method("post"),
		g.Action("/events/register"),
		hx.Post("/events/register"),
		hx.Target("#"+EventCardID(card.ID)),
		hx.Swap("outerHTML"),
		partials.CSRFField(csrfToken),
		g.Input(g.Type("hidden"), g.Name("eventId"), g.Value(card.ID)),
		g.Button(g.Type("submit"), g.Class("btn btn-success wide"), cmp.Text("Register")),
	)
}
