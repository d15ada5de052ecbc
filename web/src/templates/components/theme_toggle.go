package components

import (
	"github.com/nfrund/authforms/internal/theme"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// ThemeToggle renders the fixed light/dark switch shown on every page.
func ThemeToggle(t theme.Theme) g.Node {
	icon, title := "☾", "Switch to dark theme"
	if t.IsDark() {
		icon, title = "☀", "Switch to light theme"
	}
	return Button(
		Type("button"),
		ID("theme-toggle"),
		Class("theme-toggle"),
		Aria("label", "Toggle theme"),
		Title(title),
		hx.Post("/theme"),
		hx.Swap("none"),
		g.Text(icon),
	)
}
