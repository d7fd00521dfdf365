package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	t.Run("templ inside gomponents keeps the context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ctxKey{}, "ctx-value")
		inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, ctx.Value(ctxKey{}).(string))
			return err
		})

		var buf bytes.Buffer
		require.NoError(t, g.Div(view.AdaptTemplToGomponent(ctx, inner)).Render(&buf))
		assert.Equal(t, "<div>ctx-value</div>", buf.String())
	})

	t.Run("gomponents inside templ", func(t *testing.T) {
		var buf bytes.Buffer
		c := view.AdaptGomponentToTempl(g.Strong(cmp.Text("bold")))
		require.NoError(t, c.Render(context.Background(), &buf))
		assert.Equal(t, "<strong>bold</strong>", buf.String())
	})
}
