package partials

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view"
)

// CSRFField is the hidden token input every form posts.
func CSRFField(token string) cmp.Node {
	return g.Input(g.Type("hidden"), g.Name(middleware.CSRFFieldName), g.Value(token))
}

// Field is a labelled input.
func Field(id, label, inputType, value string, extra ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("field"),
		cmp.El("label", cmp.Attr("for", id), cmp.Text(label)),
		g.Input(
			g.ID(id),
			g.Name(id),
			g.Type(inputType),
			cmp.If(inputType != "password", g.Value(value)),
			g.Required(),
			cmp.Group(extra),
		),
	)
}

// Alert is a static, non-expiring message box.
func Alert(severity, text string) cmp.Node {
	if text == "" {
		return nil
	}
	return g.Div(g.Class("alert alert-"+severity), g.Role("alert"), cmp.Text(text))
}

// Flashes renders the one-shot messages carried across a redirect.
func Flashes(f view.FlashData) cmp.Node {
	if f.Empty() {
		return nil
	}
	return g.Div(
		g.Class("flashes"),
		cmp.Map(f.Success, func(m string) cmp.Node { return Alert("success", m) }),
		cmp.Map(f.Error, func(m string) cmp.Node { return Alert("danger", m) }),
	)
}
