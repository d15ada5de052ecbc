package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// GomponentToTemplAdapter wraps a gomponents.Node to satisfy the templ.Component interface.
type GomponentToTemplAdapter struct {
	Node gomponents.Node
}

// Render implements templ.Component by delegating to the wrapped node.
func (a *GomponentToTemplAdapter) Render(ctx context.Context, w io.Writer) error {
	return a.Node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}

// TemplToGomponentAdapter wraps a templ.Component to satisfy the gomponents.Node interface.
type TemplToGomponentAdapter struct {
	Component templ.Component
	ctx       context.Context
}

// Render implements gomponents.Node. Gomponents does not pass a context, so the
// one captured at construction (or context.Background) is used.
func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Component.Render(ctx, w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents node.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Component: component}
}

// AdaptTemplToGomponentCtx is AdaptTemplToGomponent with the request context kept
// for the nested templ render.
func AdaptTemplToGomponentCtx(ctx context.Context, component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Component: component, ctx: ctx}
}
