package validation

// State is an immutable view of a Session at one point in time.
type State struct {
	Kind       Kind
	Values     map[Field]string
	Touched    map[Field]bool
	Errors     map[Field]string
	RememberMe bool
	Submitting bool
	// Attempted is set once Submit has run, even if it was rejected as invalid.
	Attempted     bool
	Valid         bool
	SubmitEnabled bool
}

// Value returns the current text of a field.
func (st State) Value(f Field) string { return st.Values[f] }

// ErrorVisible reports whether the field's error may be shown. Errors stay
// hidden until the field was blurred or a submit was attempted.
func (st State) ErrorVisible(f Field) bool {
	if f == FieldSubmit {
		return true
	}
	return st.Touched[f] || st.Attempted
}

// VisibleError returns the message to render next to the field, or "".
func (st State) VisibleError(f Field) string {
	if !st.ErrorVisible(f) {
		return ""
	}
	return st.Errors[f]
}

// HasVisibleError is a convenience for renderers choosing field styles.
func (st State) HasVisibleError(f Field) bool {
	return st.VisibleError(f) != ""
}
