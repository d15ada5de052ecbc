package components

import (
	"fmt"
	"strings"

	"github.com/nfrund/authforms/internal/validation"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

var titleCase = cases.Title(language.English)

type fieldCopy struct {
	label        string
	placeholder  string
	autocomplete string
}

// fieldText returns label and placeholder copy for a field on a given form.
func fieldText(kind validation.Kind, f validation.Field) fieldCopy {
	switch f {
	case validation.FieldEmail:
		return fieldCopy{titleCase.String("email address"), "Enter your email", "email"}
	case validation.FieldPassword:
		if kind == validation.KindRegister {
			return fieldCopy{titleCase.String("password"), "Create a password", "new-password"}
		}
		return fieldCopy{titleCase.String("password"), "Enter your password", "current-password"}
	case validation.FieldConfirmPassword:
		return fieldCopy{titleCase.String("confirm password"), "Confirm your password", "new-password"}
	}
	return fieldCopy{label: string(f)}
}

// Route builds the htmx endpoint for a form, e.g. Route(KindLogin, "blur", "email").
func Route(kind validation.Kind, parts ...string) string {
	if len(parts) == 0 {
		return "/" + kind.String()
	}
	return "/" + kind.String() + "/" + strings.Join(parts, "/")
}

func errorID(f validation.Field) string { return string(f) + "-error" }
func inputID(f validation.Field) string { return string(f) + "-input" }

// FieldRow renders label, input and inline error for one field. Leaving any
// element of the row posts a blur for the field.
func FieldRow(d auth.FormData, f validation.Field) g.Node {
	text := fieldText(d.Kind(), f)
	return Div(
		Class("field animate-rise"),
		hx.Post(Route(d.Kind(), "blur", string(f))),
		hx.Trigger("focusout"),
		hx.Swap("none"),
		Label(For(string(f)), Class("field-label"), g.Text(text.label)),
		FieldInput(d, f),
		FieldError(d.State, f, false),
	)
}

// FieldInput renders the input wrapper; it is also the swap target of the
// password visibility toggle.
func FieldInput(d auth.FormData, f validation.Field) g.Node {
	text := fieldText(d.Kind(), f)
	inputType := "password"
	switch {
	case f == validation.FieldEmail:
		inputType = "email"
	case d.Revealed(f):
		inputType = "text"
	}

	invalid := d.State.HasVisibleError(f)
	classes := "input"
	if invalid {
		classes += " input-invalid"
	}

	return Div(
		ID(inputID(f)),
		Class("input-wrapper"),
		Input(
			Type(inputType),
			ID(string(f)),
			Name(string(f)),
			Value(d.State.Value(f)),
			Class(classes),
			Placeholder(text.placeholder),
			AutoComplete(text.autocomplete),
			g.If(f == validation.FieldEmail, AutoFocus()),
			g.If(d.State.Submitting, Disabled()),
			Aria("invalid", fmt.Sprint(invalid)),
			g.If(invalid, Aria("describedby", errorID(f))),
			hx.Post(Route(d.Kind(), "fields", string(f))),
			hx.Trigger("input changed delay:150ms"),
			hx.Swap("none"),
		),
		g.If(f != validation.FieldEmail, revealToggle(d, f)),
	)
}

func revealToggle(d auth.FormData, f validation.Field) g.Node {
	next := !d.Revealed(f)
	label, text := "Show password", "Show"
	if !next {
		label, text = "Hide password", "Hide"
	}
	return Button(
		Type("button"),
		Class("reveal-toggle"),
		Aria("label", label),
		g.If(d.State.Submitting, Disabled()),
		hx.Post(Route(d.Kind(), "reveal", string(f))),
		hx.Vals(fmt.Sprintf(`{"reveal": "%t"}`, next)),
		hx.Target("#"+inputID(f)),
		hx.Swap("outerHTML"),
		g.Text(text),
	)
}

// FieldError renders the inline error slot. It is always present so htmx can
// swap it out-of-band; it is empty while the error is hidden.
func FieldError(st validation.State, f validation.Field, oob bool) g.Node {
	msg := st.VisibleError(f)
	classes := "field-error"
	if msg != "" {
		classes += " is-visible animate-drop"
	}
	return P(
		ID(errorID(f)),
		Class(classes),
		g.If(oob, hx.SwapOOB("true")),
		g.If(msg != "", Role("alert")),
		g.Text(msg),
	)
}

// SubmitBanner renders the form-level failure message.
func SubmitBanner(st validation.State, oob bool) g.Node {
	msg := st.VisibleError(validation.FieldSubmit)
	classes := "banner"
	if msg != "" {
		classes += " banner-error is-visible animate-drop"
	}
	return Div(
		ID("submit-banner"),
		Class(classes),
		g.If(oob, hx.SwapOOB("true")),
		g.If(msg != "", Role("alert")),
		g.Text(msg),
	)
}

// SubmitButton renders the primary action with its derived disabled and
// loading states.
func SubmitButton(d auth.FormData, oob bool) g.Node {
	idle, busy := "Sign In with Email", "Signing in..."
	if d.Kind() == validation.KindRegister {
		idle, busy = "Sign Up with Email", "Creating account..."
	}
	label := idle
	if d.State.Submitting {
		label = busy
	}

	return Button(
		Type("submit"),
		ID("submit-button"),
		Class("btn-primary"),
		g.If(oob, hx.SwapOOB("true")),
		g.If(d.SubmitDisabled(), Disabled()),
		g.If(d.State.Submitting, Span(Class("spinner"), Aria("hidden", "true"))),
		Span(ID("submit-spinner"), Class("htmx-indicator spinner"), Aria("hidden", "true")),
		Span(g.Text(label)),
	)
}

// RememberMe renders the login form's checkbox and the forgot-password link.
func RememberMe(d auth.FormData) g.Node {
	return Div(
		Class("form-extras animate-rise"),
		Label(
			Class("checkbox"),
			Input(
				Type("checkbox"),
				ID("remember_me"),
				Name("remember_me"),
				g.If(d.State.RememberMe, Checked()),
				g.If(d.State.Submitting, Disabled()),
				hx.Post(Route(d.Kind(), "remember")),
				hx.Trigger("change"),
				hx.Swap("none"),
			),
			g.Text("Remember me"),
		),
		Button(
			Type("button"),
			Class("link-button"),
			g.If(d.State.Submitting, Disabled()),
			hx.Post(Route(d.Kind(), "forgot")),
			hx.Swap("none"),
			g.Text("Forgot password?"),
		),
	)
}

// FormUpdates is the htmx response to a field edit, blur or submit: every
// slot whose content depends on the session is swapped out-of-band, leaving
// the inputs (and the caret) alone.
func FormUpdates(d auth.FormData) g.Node {
	nodes := g.Group{SubmitBanner(d.State, true)}
	for _, f := range d.Kind().Fields() {
		nodes = append(nodes, FieldError(d.State, f, true))
	}
	return append(nodes, SubmitButton(d, true))
}
