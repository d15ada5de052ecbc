package pages

import (
	"net/url"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/authforms/internal/validation"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	"github.com/nfrund/authforms/web/src/templates/components"
)

// Login is the sign-in card.
func Login(d auth.FormData) cmp.Node {
	return authCard(d,
		"Welcome back",
		"Login to your account",
		components.RememberMe(d),
		footer("Don't have an account?", switchHref(validation.KindRegister, d.FormID), "Sign up"),
	)
}

// Register is the sign-up card.
func Register(d auth.FormData) cmp.Node {
	return authCard(d,
		"Welcome to our website",
		"Sign up for an account",
		nil,
		footer("Already have an account?", switchHref(validation.KindLogin, d.FormID), "Sign in"),
	)
}

func authCard(d auth.FormData, title, subtitle string, extras, foot cmp.Node) cmp.Node {
	rows := make([]cmp.Node, 0, len(d.Kind().Fields()))
	for _, f := range d.Kind().Fields() {
		rows = append(rows, components.FieldRow(d, f))
	}

	return g.Main(
		g.Class("auth-page"),
		g.Div(
			g.Class("auth-split"),
			g.Div(g.Class("auth-split-left"), g.Aria("hidden", "true")),
			g.Div(g.Class("auth-split-right"), g.Aria("hidden", "true")),
		),
		g.Div(
			g.Class("auth-card animate-fade-in"),
			g.Header(
				g.Class("auth-card-header"),
				g.H1(g.Class("auth-title animate-rise"), cmp.Text(title)),
				g.P(g.Class("auth-subtitle"), cmp.Text(subtitle)),
			),
			g.Form(
				g.ID("auth-form"),
				g.Class("auth-form"),
				g.Data("form", d.Kind().String()),
				cmp.Attr("novalidate"),
				hx.Post(components.Route(d.Kind())),
				hx.Swap("none"),
				hx.Sync("this:drop"),
				hx.Indicator("#submit-spinner"),
				g.Input(g.Type("hidden"), g.Name("form_id"), g.Value(d.FormID)),
				components.SubmitBanner(d.State, false),
				cmp.Group(rows),
				extras,
				components.SubmitButton(d, false),
			),
			foot,
		),
	)
}

func footer(prompt, href, label string) cmp.Node {
	return g.Div(
		g.Class("auth-footer"),
		g.Span(g.Class("muted"), cmp.Text(prompt+" ")),
		g.A(g.Href(href), g.Class("auth-switch"), cmp.Text(label)),
	)
}

// switchHref links to the other form, naming the form being left so the
// server can discard it.
func switchHref(to validation.Kind, leaving string) string {
	href := components.Route(to)
	if leaving == "" {
		return href
	}
	return href + "?" + url.Values{"from": {leaving}}.Encode()
}

// ForKind picks the page for a form kind.
func ForKind(d auth.FormData) cmp.Node {
	if d.Kind() == validation.KindRegister {
		return Register(d)
	}
	return Login(d)
}
