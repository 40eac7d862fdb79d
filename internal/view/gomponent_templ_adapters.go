package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// AdaptGomponentToTempl wraps a gomponents.Node so it can be passed wherever
// a templ.Component is expected.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// AdaptTemplToGomponent wraps a templ.Component so it can be nested inside a
// gomponents tree. gomponents does not pass a context while rendering, so
// the component is rendered with ctx, which is usually the request context.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) gomponents.Node {
	if ctx == nil {
		ctx = context.Background()
	}
	return gomponents.NodeFunc(func(w io.Writer) error {
		if component == nil {
			return nil
		}
		return component.Render(ctx, w)
	})
}
