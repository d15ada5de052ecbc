package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authforms/internal/theme"
	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/web/src/templates/components"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the HTML document, theme class and flash area.
func Base(title string, t theme.Theme, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc := g.Doctype(
			g.HTML(
				g.Lang("en"),
				g.Class(t.String()),
				g.Head(
					g.Meta(g.Charset("utf-8")),
					g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
					g.TitleEl(cmp.Text(CalculateTitle(title))),
					g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
					g.Script(g.Src(htmxSrc), g.Defer()),
				),
				g.Body(
					g.Class("theme-transition"),
					components.ThemeToggle(t),
					flashList(flashes),
					view.AdaptTemplToGomponentCtx(ctx, content),
				),
			),
		)
		return doc.Render(w)
	})
}

func flashList(flashes view.FlashData) cmp.Node {
	if flashes.Empty() {
		return nil
	}
	nodes := make([]cmp.Node, 0, len(flashes.Success)+len(flashes.Error))
	for _, msg := range flashes.Success {
		nodes = append(nodes, g.Div(g.Class("flash flash-success animate-drop"), g.Role("status"), cmp.Text(msg)))
	}
	for _, msg := range flashes.Error {
		nodes = append(nodes, g.Div(g.Class("flash flash-error animate-drop"), g.Role("alert"), cmp.Text(msg)))
	}
	return g.Div(g.Class("flashes"), cmp.Group(nodes))
}
