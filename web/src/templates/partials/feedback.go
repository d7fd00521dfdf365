package partials

import (
	"fmt"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view/dto"
)

// FeedbackID is the element id of a page's feedback slot.
func FeedbackID(page string) string {
	return "feedback-" + page
}

// Feedback renders a page's feedback slot. A visible message schedules its
// own refresh after the TTL; by then the channel has expired it and the slot
// comes back empty. The slot is always present so htmx can swap into it.
func Feedback(f dto.Feedback) cmp.Node {
	return feedbackSlot(f, false)
}

// FeedbackOOB renders the slot for an out-of-band swap alongside another fragment.
func FeedbackOOB(f dto.Feedback) cmp.Node {
	return feedbackSlot(f, true)
}

func feedbackSlot(f dto.Feedback, oob bool) cmp.Node {
	id := FeedbackID(f.Page)
	if !f.Visible {
		return g.Div(g.ID(id), g.Class("feedback"), cmp.If(oob, hx.SwapOOB("true")))
	}
	return g.Div(
		g.ID(id),
		g.Class("feedback"),
		cmp.If(oob, hx.SwapOOB("true")),
		hx.Get("/feedback/"+f.Page),
		hx.Trigger(fmt.Sprintf("load delay:%dms", f.TTL.Milliseconds())),
		hx.Swap("outerHTML"),
		g.Div(
			g.Class("alert alert-"+f.Severity),
			g.Role("alert"),
			g.Span(cmp.Text(f.Text)),
			g.Button(
				g.Type("button"),
				g.Class("close"),
				cmp.Attr("aria-label", "Dismiss"),
				hx.Post("/feedback/"+f.Page+"/dismiss"),
				hx.Target("#"+id),
				hx.Swap("outerHTML"),
				cmp.Raw("&times;"),
			),
		),
	)
}
