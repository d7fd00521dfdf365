package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
)

// AdaptGomponentToTempl lets a gomponents node be a child of a templ component.
func AdaptGomponentToTempl(node cmp.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// templNode renders a templ component wherever a gomponents node is expected.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// AdaptTemplToGomponent lets a templ component be a child of a gomponents
// view. gomponents does not pass a context down, so the one given here is used.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) cmp.Node {
	if ctx == nil {
		ctx = context.Background()
	}
	return templNode{ctx: ctx, component: component}
}
