package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

// ByteCardID is the element the BYTE form swaps on submit.
const ByteCardID = "byte-card"

// byteSubmitID is the submit button portal.js enables once a domain is picked.
const byteSubmitID = "byte-submit"

// Byte is the BYTE class registration page.
func Byte(csrfToken string, page dto.BytePage) cmp.Node {
	return g.Section(
		g.Class("container narrow"),
		partials.Feedback(page.Feedback),
		ByteCard(csrfToken, page),
	)
}

// ByteCard is the swappable part of the BYTE page: the domain form while not
// registered, the registration summary once registered.
func ByteCard(csrfToken string, page dto.BytePage) cmp.Node {
	st := page.Status
	return g.Div(
		g.ID(ByteCardID),
		g.Class("card center"),
		cmp.If(st.Registered(), byteRegistered(st, page.Domains)),
		cmp.If(!st.Registered(), byteForm(csrfToken, page)),
	)
}

func byteRegistered(st registration.Status, domains []dto.DomainOption) cmp.Node {
	payment := "Payment verification pending"
	badge := "badge badge-warning"
	if st.Verified() {
		payment = "Payment verified"
		badge = "badge badge-success"
	}
	return g.Div(
		g.H4(g.Class("success"), cmp.Text("You have successfully registered!")),
		g.P(cmp.Text("Registered Domain: "), g.Strong(cmp.Text(domainLabel(domains, st.Subject)))),
		g.Span(g.Class(badge), cmp.Text(payment)),
	)
}

func byteForm(csrfToken string, page dto.BytePage) cmp.Node {
	return g.Div(
		g.H3(cmp.Text("Register for BYTE Class")),
		cmp.If(page.Status.Mode == registration.ModeUnknown,
			partials.Alert("info", "Registration status unavailable. You can still register below."),
		),
		cmp.El("form",
			g.Method("post"),
			g.Action("/byte-register"),
			hx.Post("/byte-register"),
			hx.Target("#"+ByteCardID),
			hx.Swap("outerHTML"),
			partials.CSRFField(csrfToken),
			g.Div(
				g.Class("field"),
				cmp.El("label", cmp.Attr("for", "domain"), cmp.Text("Select a Domain")),
				g.Select(
					g.ID("domain"),
					g.Name("domain"),
					g.Required(),
					cmp.Attr("data-enables", byteSubmitID),
					option("", "Choose a domain", page.Selected),
					cmp.Map(page.Domains, func(d dto.DomainOption) cmp.Node {
						return option(d.Value, d.Label, page.Selected)
					}),
				),
			),
			g.Button(
				g.ID(byteSubmitID),
				g.Type("submit"),
				g.Class("btn btn-success wide"),
				cmp.If(page.Selected == "", g.Disabled()),
				cmp.Text("Register"),
			),
		),
	)
}

func domainLabel(domains []dto.DomainOption, value string) string {
	for _, d := range domains {
		if d.Value == value {
			return d.Label
		}
	}
	return value
}
