package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view"
)

// StatCard is a dashboard counter tile. It is a templ component so it can be
// reused from templ layouts; the figure itself is a gomponents node.
func StatCard(label string, value int, tone string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="stat stat-`+templ.EscapeString(tone)+`"><p class="muted small">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(label)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</p>`); err != nil {
			return err
		}
		if err := view.AdaptGomponentToTempl(g.H3(cmp.Textf("%d", value))).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
