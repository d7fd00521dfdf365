package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/backend"
)

// Home lists the catalog with the BYTE class pinned first; the BYTE entry
// links to its registration page.
func Home(events []backend.EventSummary) cmp.Node {
	return g.Section(
		g.Class("container"),
		g.H2(cmp.Text("Upcoming Events")),
		cmp.If(len(events) == 0, g.P(g.Class("muted"), cmp.Text("No events to display."))),
		g.Ul(
			g.Class("list-group"),
			cmp.Map(events, func(ev backend.EventSummary) cmp.Node {
				href := "/events"
				if ev.Title == "BYTE" {
					href = "/byte-register"
				}
				return g.Li(
					g.Class("list-group-item"),
					g.A(g.Href(href), g.H5(cmp.Text(ev.Title))),
					g.P(cmp.Text(ev.Description)),
				)
			}),
		),
	)
}
