package validation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/message"
)

// Credentials is the payload handed to the submitter. RememberMe is only
// meaningful for the login form.
type Credentials struct {
	Email      string
	Password   string
	RememberMe bool
}

// Submitter performs the actual sign-in or sign-up once the form is valid.
// The session only cares whether it returns an error.
type Submitter interface {
	Submit(ctx context.Context, kind Kind, creds Credentials) error
}

type noopSubmitter struct{}

func (noopSubmitter) Submit(context.Context, Kind, Credentials) error { return nil }

// Option configures a Session.
type Option func(*Session)

// WithPrinter renders error messages through p instead of the English default.
func WithPrinter(p *message.Printer) Option {
	return func(s *Session) {
		if p != nil {
			s.printer = p
		}
	}
}

// Session owns the values, touched set and ErrorMap of one mounted form.
// It is safe for concurrent use. The lock is not held while the submitter
// runs, so edits and blurs keep working during a submit.
type Session struct {
	kind      Kind
	submitter Submitter
	printer   *message.Printer

	mu         sync.Mutex
	values     map[Field]string
	touched    map[Field]bool
	errors     map[Field]string
	rememberMe bool
	submitting bool
	attempted  bool
	closed     bool
}

// NewSession creates an empty form session. A nil submitter accepts every submit.
func NewSession(kind Kind, submitter Submitter, opts ...Option) (*Session, error) {
	if _, ok := kindFields[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if submitter == nil {
		submitter = noopSubmitter{}
	}
	s := &Session{
		kind:      kind,
		submitter: submitter,
		printer:   defaultPrinter,
		values:    make(map[Field]string),
		touched:   make(map[Field]bool),
		errors:    make(map[Field]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Kind returns the form this session drives.
func (s *Session) Kind() Kind { return s.kind }

func (s *Session) field(f Field) error {
	if !s.kind.Has(f) {
		return fmt.Errorf("%w: %q on %s form", ErrUnknownField, f, s.kind)
	}
	return nil
}

// recompute must be called with mu held.
func (s *Session) recompute(f Field) {
	s.errors[f] = messageWith(s.printer, f, check(f, s.values))
}

// SetValue stores a new value. Errors are only recomputed for touched
// fields; a password change also refreshes a touched confirmation.
func (s *Session) SetValue(f Field, value string) error {
	if err := s.field(f); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.values[f] = value
	if s.touched[f] {
		s.recompute(f)
	}
	if f == FieldPassword && s.kind.Has(FieldConfirmPassword) && s.touched[FieldConfirmPassword] {
		s.recompute(FieldConfirmPassword)
	}
	return nil
}

// Blur marks the field touched and recomputes its error from current values.
func (s *Session) Blur(f Field) error {
	if err := s.field(f); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.touched[f] = true
	s.recompute(f)
	return nil
}

// SetRememberMe records the login form's "remember me" checkbox.
func (s *Session) SetRememberMe(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.rememberMe = on
	return nil
}

// IsFormValid reports whether every field passes its rule and is non-empty.
// It is evaluated from scratch on each call.
func (s *Session) IsFormValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validLocked()
}

func (s *Session) validLocked() bool {
	for _, f := range s.kind.Fields() {
		if s.values[f] == "" || !check(f, s.values).OK() {
			return false
		}
	}
	return true
}

// IsSubmitting reports whether a submit is in flight.
func (s *Session) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SubmitEnabled reports whether the submit control should accept a click.
func (s *Session) SubmitEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitEnabledLocked()
}

func (s *Session) submitEnabledLocked() bool {
	if s.submitting || s.closed {
		return false
	}
	return !s.kind.GatesSubmit() || s.validLocked()
}

// Submit touches every field and validates the whole form. An invalid form
// only updates the ErrorMap and returns ErrInvalidForm. A valid form is handed
// to the submitter; the outcome either clears the ErrorMap or sets the submit
// banner. A second Submit while one is pending returns ErrSubmitInProgress and
// changes nothing. If the session is closed before the submitter returns the
// outcome is discarded and ErrSessionClosed is returned.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}

	s.attempted = true
	invalid := false
	errs := make(map[Field]string, len(s.kind.Fields()))
	for _, f := range s.kind.Fields() {
		s.touched[f] = true
		errs[f] = messageWith(s.printer, f, check(f, s.values))
		if errs[f] != "" {
			invalid = true
		}
	}
	if invalid {
		s.errors = errs
		s.mu.Unlock()
		return ErrInvalidForm
	}

	s.submitting = true
	s.errors = make(map[Field]string)
	creds := Credentials{
		Email:    s.values[FieldEmail],
		Password: s.values[FieldPassword],
	}
	if s.kind == KindLogin {
		creds.RememberMe = s.rememberMe
	}
	s.mu.Unlock()

	err := s.submitter.Submit(ctx, s.kind, creds)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.submitting = false
	if err != nil {
		s.errors = map[Field]string{FieldSubmit: s.printer.Sprintf(submitFailureKey(s.kind))}
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	s.errors = make(map[Field]string)
	return nil
}

// Close ends the session. Later calls fail with ErrSessionClosed and a
// pending submit result is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Kind:          s.kind,
		Values:        make(map[Field]string, len(s.values)),
		Touched:       make(map[Field]bool, len(s.touched)),
		Errors:        make(map[Field]string, len(s.errors)),
		RememberMe:    s.rememberMe,
		Submitting:    s.submitting,
		Attempted:     s.attempted,
		Valid:         s.validLocked(),
		SubmitEnabled: s.submitEnabledLocked(),
	}
	for k, v := range s.values {
		st.Values[k] = v
	}
	for k, v := range s.touched {
		st.Touched[k] = v
	}
	for k, v := range s.errors {
		if v != "" {
			st.Errors[k] = v
		}
	}
	return st
}

// Errors returns a copy of the ErrorMap without empty entries.
func (s *Session) Errors() map[Field]string {
	return s.Snapshot().Errors
}
