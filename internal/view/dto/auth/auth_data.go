package auth

import (
	"github.com/nfrund/authforms/internal/theme"
	"github.com/nfrund/authforms/internal/validation"
)

// FormData is the View Model (DTO) for the login and registration templates.
// It carries a snapshot of the validation session plus view-only flags.
type FormData struct {
	// FormID identifies the validation session; it travels in a hidden input.
	FormID string
	State  validation.State
	Theme  theme.Theme
	// Reveal lists password fields currently shown as plain text.
	Reveal map[validation.Field]bool
}

// Kind is a shortcut for the form being rendered.
func (d FormData) Kind() validation.Kind { return d.State.Kind }

// Revealed reports whether the field's input should render as type=text.
func (d FormData) Revealed(f validation.Field) bool { return d.Reveal[f] }

// SubmitDisabled is the derived state of the submit button.
func (d FormData) SubmitDisabled() bool { return !d.State.SubmitEnabled }
