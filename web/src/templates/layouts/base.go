package layouts

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

// htmxSrc is the pinned htmx build the portal's fragments are written against.
const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the document shell: head, sidebar and flashes.
// Every htmx request carries the CSRF token as a header.
func Base(chrome dto.Chrome, content ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				cmp.El("title", cmp.Text(PageTitle(chrome.Title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/portal.css")),
				g.Script(g.Src(htmxSrc)),
				g.Script(g.Src("/static/portal.js"), g.Defer()),
			),
			g.Body(
				hx.Headers(`{"X-CSRF-Token": "`+chrome.CSRFToken+`"}`),
				g.Div(
					g.Class("portal"),
					partials.Sidebar(chrome),
					g.Main(
						g.Class("portal-main"),
						partials.Flashes(chrome.Flash),
						cmp.Group(content),
					),
				),
			),
		),
	)
}
