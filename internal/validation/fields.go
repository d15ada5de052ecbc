package validation

import "fmt"

// Field identifies an input on one of the auth forms.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"

	// FieldSubmit is the reserved error key for form-level submit failures.
	// It is never a user-editable input.
	FieldSubmit Field = "submit"
)

// ParseField converts the name used in routes and form posts into a Field.
// The reserved submit key is rejected because it cannot be edited or blurred.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldEmail, FieldPassword, FieldConfirmPassword:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Kind selects which form a session drives.
type Kind string

const (
	KindLogin    Kind = "login"
	KindRegister Kind = "register"
)

var kindFields = map[Kind][]Field{
	KindLogin:    {FieldEmail, FieldPassword},
	KindRegister: {FieldEmail, FieldPassword, FieldConfirmPassword},
}

// ParseKind converts a route segment such as "login" into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, ok := kindFields[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Fields returns the fields registered for the form, in display order.
func (k Kind) Fields() []Field {
	fields := kindFields[k]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Has reports whether the field belongs to the form.
func (k Kind) Has(f Field) bool {
	for _, candidate := range kindFields[k] {
		if candidate == f {
			return true
		}
	}
	return false
}

// GatesSubmit reports whether the submit button is disabled while the form is
// invalid. Registration gates it; login keeps it enabled and relies on the
// errors surfaced by Submit.
func (k Kind) GatesSubmit() bool {
	return k == KindRegister
}

func (k Kind) String() string { return string(k) }
