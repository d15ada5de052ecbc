package theme

import "fmt"

// Theme is the colour scheme chosen by the visitor.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used until the visitor toggles.
const Default = Light

// Parse accepts "light" or "dark".
func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark is the derived flag renderers branch on.
func (t Theme) IsDark() bool { return t == Dark }

func (t Theme) String() string { return string(t) }
