package validation

import "errors"

// Code classifies why a field failed validation. The zero value means valid.
type Code string

const (
	CodeRequiredField Code = "required_field"
	CodeInvalidFormat Code = "invalid_format"
	CodeTooShort      Code = "too_short"
	CodeMismatch      Code = "mismatch"
	CodeSubmitFailure Code = "submit_failure"
)

// OK reports whether the code denotes a passing validation.
func (c Code) OK() bool { return c == "" }

// Sentinel errors returned by Session operations. Field-level validation
// failures are never reported this way; they land in the session's ErrorMap.
var (
	// ErrInvalidForm means Submit found at least one failing field and did not
	// call the submitter.
	ErrInvalidForm = errors.New("form has validation errors")

	// ErrSubmitInProgress means a submit is already in flight for the session.
	ErrSubmitInProgress = errors.New("submit already in progress")

	// ErrSubmitFailed wraps the error reported by the submitter.
	ErrSubmitFailed = errors.New("submit failed")

	// ErrSessionClosed means the form was unmounted.
	ErrSessionClosed = errors.New("form session closed")

	ErrUnknownField = errors.New("unknown field")
	ErrUnknownKind  = errors.New("unknown form kind")
)
