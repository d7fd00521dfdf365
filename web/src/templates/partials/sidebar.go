package partials

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view/dto"
)

type navLink struct {
	key   string
	href  string
	label string
}

var memberLinks = []navLink{
	{dto.NavHome, "/", "Home"},
	{dto.NavEvents, "/events", "Events"},
	{dto.NavByte, "/byte-register", "BYTE"},
	{dto.NavProfile, "/profile", "Profile"},
}

// Sidebar is the persistent navigation.
func Sidebar(chrome dto.Chrome) cmp.Node {
	return g.Nav(
		g.Class("portal-sidebar"),
		g.A(g.Class("brand"), g.Href("/"), cmp.Text("Club Portal")),
		g.Ul(
			cmp.Map(memberLinks, func(l navLink) cmp.Node {
				return g.Li(navAnchor(l, chrome.Active))
			}),
			cmp.If(chrome.Admin, g.Li(navAnchor(navLink{dto.NavAdmin, "/admin/dashboard", "Dashboard"}, chrome.Active))),
		),
		g.Div(
			g.Class("sidebar-auth"),
			cmp.If(chrome.SignedIn || chrome.Admin, logoutForm(chrome.CSRFToken)),
			cmp.If(!chrome.SignedIn && !chrome.Admin, g.Div(
				g.A(g.Href("/login"), cmp.Text("Login")),
				cmp.Text(" · "),
				g.A(g.Href("/signup"), cmp.Text("Sign up")),
			)),
		),
	)
}

func navAnchor(l navLink, active string) cmp.Node {
	return g.A(
		g.Href(l.href),
		cmp.If(l.key == active, g.Class("active")),
		cmp.Text(l.label),
	)
}

func logoutForm(token string) cmp.Node {
	return cmp.El("form",
		g.Method("post"),
		g.Action("/logout"),
		CSRFField(token),
		g.Button(g.Type("submit"), g.Class("link"), cmp.Text("Logout")),
	)
}
