package validation_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfrund/authforms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSubmitter counts calls and optionally blocks until released.
type recordingSubmitter struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
	last    validation.Credentials
}

func newBlockingSubmitter() *recordingSubmitter {
	return &recordingSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (r *recordingSubmitter) Submit(ctx context.Context, kind validation.Kind, creds validation.Credentials) error {
	r.calls.Add(1)
	r.last = creds
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return r.err
}

func newSession(t *testing.T, kind validation.Kind, sub validation.Submitter) *validation.Session {
	t.Helper()
	s, err := validation.NewSession(kind, sub)
	require.NoError(t, err)
	return s
}

func fill(t *testing.T, s *validation.Session, values map[validation.Field]string) {
	t.Helper()
	for f, v := range values {
		require.NoError(t, s.SetValue(f, v))
	}
}

func TestSetValue_UntouchedFieldComputesNoError(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)

	require.NoError(t, s.SetValue(validation.FieldEmail, "not-an-email"))

	assert.Empty(t, s.Errors())
	assert.Empty(t, s.Snapshot().VisibleError(validation.FieldEmail))
}

func TestBlur_TouchesAndValidates(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)
	require.NoError(t, s.SetValue(validation.FieldEmail, "not-an-email"))

	require.NoError(t, s.Blur(validation.FieldEmail))

	st := s.Snapshot()
	assert.True(t, st.Touched[validation.FieldEmail])
	assert.Equal(t, "Please enter a valid email address", st.VisibleError(validation.FieldEmail))
	assert.False(t, st.Touched[validation.FieldPassword])
}

func TestBlur_IsIdempotent(t *testing.T) {
	s := newSession(t, validation.KindRegister, nil)
	require.NoError(t, s.SetValue(validation.FieldPassword, "abc"))

	require.NoError(t, s.Blur(validation.FieldPassword))
	first := s.Errors()
	require.NoError(t, s.Blur(validation.FieldPassword))
	second := s.Errors()

	assert.Equal(t, first, second)
	assert.Equal(t, "Password must be at least 6 characters", second[validation.FieldPassword])
}

func TestSetValue_TouchedFieldRevalidates(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)
	require.NoError(t, s.Blur(validation.FieldPassword))
	assert.Equal(t, "Password is required", s.Errors()[validation.FieldPassword])

	require.NoError(t, s.SetValue(validation.FieldPassword, "abc"))
	assert.Equal(t, "Password must be at least 6 characters", s.Errors()[validation.FieldPassword])

	require.NoError(t, s.SetValue(validation.FieldPassword, "abcdef"))
	assert.NotContains(t, s.Errors(), validation.FieldPassword)
}

func TestSetValue_PasswordRefreshesTouchedConfirmation(t *testing.T) {
	s := newSession(t, validation.KindRegister, nil)
	fill(t, s, map[validation.Field]string{
		validation.FieldPassword:        "abcdef",
		validation.FieldConfirmPassword: "abcdef",
	})
	require.NoError(t, s.Blur(validation.FieldConfirmPassword))
	assert.NotContains(t, s.Errors(), validation.FieldConfirmPassword)

	require.NoError(t, s.SetValue(validation.FieldPassword, "abcdefg"))

	errs := s.Errors()
	assert.Equal(t, "Passwords do not match", errs[validation.FieldConfirmPassword])
	assert.NotContains(t, errs, validation.FieldPassword, "password itself is untouched")
}

func TestSetValue_PasswordLeavesUntouchedConfirmationAlone(t *testing.T) {
	s := newSession(t, validation.KindRegister, nil)
	fill(t, s, map[validation.Field]string{validation.FieldConfirmPassword: "abcdef"})

	require.NoError(t, s.SetValue(validation.FieldPassword, "zzzzzz"))

	assert.Empty(t, s.Errors())
}

func TestSession_RejectsForeignFields(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)

	assert.ErrorIs(t, s.SetValue(validation.FieldConfirmPassword, "x"), validation.ErrUnknownField)
	assert.ErrorIs(t, s.Blur(validation.FieldSubmit), validation.ErrUnknownField)
}

func TestNewSession_UnknownKind(t *testing.T) {
	_, err := validation.NewSession(validation.Kind("reset"), nil)
	assert.ErrorIs(t, err, validation.ErrUnknownKind)
}

func TestIsFormValid(t *testing.T) {
	valid := map[validation.Field]string{
		validation.FieldEmail:           "a@b.com",
		validation.FieldPassword:        "abcdef",
		validation.FieldConfirmPassword: "abcdef",
	}

	t.Run("fully valid registration", func(t *testing.T) {
		s := newSession(t, validation.KindRegister, nil)
		fill(t, s, valid)
		assert.True(t, s.IsFormValid())
		assert.True(t, s.SubmitEnabled())
	})

	for _, f := range validation.KindRegister.Fields() {
		t.Run("empty "+string(f), func(t *testing.T) {
			s := newSession(t, validation.KindRegister, nil)
			fill(t, s, valid)
			require.NoError(t, s.SetValue(f, ""))
			assert.False(t, s.IsFormValid())
			assert.False(t, s.SubmitEnabled())
		})
	}

	t.Run("failing rule", func(t *testing.T) {
		s := newSession(t, validation.KindRegister, nil)
		fill(t, s, valid)
		require.NoError(t, s.SetValue(validation.FieldConfirmPassword, "abcdxx"))
		assert.False(t, s.IsFormValid())
	})

	t.Run("recomputed after each change", func(t *testing.T) {
		s := newSession(t, validation.KindRegister, nil)
		fill(t, s, valid)
		require.True(t, s.IsFormValid())
		require.NoError(t, s.SetValue(validation.FieldEmail, "broken"))
		assert.False(t, s.IsFormValid())
		require.NoError(t, s.SetValue(validation.FieldEmail, "a@b.com"))
		assert.True(t, s.IsFormValid())
	})
}

func TestSubmitEnabled_LoginIgnoresValidity(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)

	assert.False(t, s.IsFormValid())
	assert.True(t, s.SubmitEnabled())
}

func TestSubmit_InvalidRegistrationSkipsSubmitter(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newSession(t, validation.KindRegister, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:           "a@b.com",
		validation.FieldPassword:        "abcdef",
		validation.FieldConfirmPassword: "abcdxx",
	})

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, validation.ErrInvalidForm)
	assert.Zero(t, sub.calls.Load())
	st := s.Snapshot()
	assert.False(t, st.Submitting)
	assert.True(t, st.Attempted)
	assert.Equal(t, map[validation.Field]string{
		validation.FieldConfirmPassword: validation.Message(validation.FieldConfirmPassword, validation.CodeMismatch),
	}, st.Errors)
	for _, f := range validation.KindRegister.Fields() {
		assert.True(t, st.Touched[f], "field %s should be touched", f)
	}
}

func TestSubmit_EmptyLoginShowsAllErrors(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, validation.ErrInvalidForm)
	st := s.Snapshot()
	assert.Equal(t, "Email is required", st.VisibleError(validation.FieldEmail))
	assert.Equal(t, "Password is required", st.VisibleError(validation.FieldPassword))
}

func TestSubmit_Success(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newSession(t, validation.KindLogin, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:    "user@example.com",
		validation.FieldPassword: "hunter22",
	})
	require.NoError(t, s.SetRememberMe(true))

	require.NoError(t, s.Submit(context.Background()))

	assert.EqualValues(t, 1, sub.calls.Load())
	assert.Equal(t, validation.Credentials{Email: "user@example.com", Password: "hunter22", RememberMe: true}, sub.last)
	assert.False(t, s.IsSubmitting())
	assert.Empty(t, s.Errors())
}

func TestSubmit_RegisterNeverSendsRememberMe(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newSession(t, validation.KindRegister, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:           "a@b.com",
		validation.FieldPassword:        "abcdef",
		validation.FieldConfirmPassword: "abcdef",
	})
	require.NoError(t, s.SetRememberMe(true))

	require.NoError(t, s.Submit(context.Background()))
	assert.False(t, sub.last.RememberMe)
}

func TestSubmit_FailureSetsBannerAndStaysEditable(t *testing.T) {
	boom := errors.New("backend unavailable")
	sub := &recordingSubmitter{err: boom}
	s := newSession(t, validation.KindRegister, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:           "a@b.com",
		validation.FieldPassword:        "abcdef",
		validation.FieldConfirmPassword: "abcdef",
	})

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, validation.ErrSubmitFailed)
	assert.ErrorIs(t, err, boom)
	st := s.Snapshot()
	assert.False(t, st.Submitting)
	assert.Equal(t, "Registration failed. Please try again.", st.VisibleError(validation.FieldSubmit))

	// A resubmission is allowed and clears the banner on success.
	sub.err = nil
	require.NoError(t, s.Submit(context.Background()))
	assert.Empty(t, s.Errors())
	assert.EqualValues(t, 2, sub.calls.Load())
}

func TestSubmit_SecondCallWhileInFlightIsNoop(t *testing.T) {
	sub := newBlockingSubmitter()
	s := newSession(t, validation.KindLogin, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:    "user@example.com",
		validation.FieldPassword: "abcdef",
	})

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-sub.started

	before := s.Snapshot()
	require.True(t, before.Submitting)
	assert.False(t, before.SubmitEnabled)

	err := s.Submit(context.Background())
	assert.ErrorIs(t, err, validation.ErrSubmitInProgress)
	assert.Equal(t, before, s.Snapshot())

	// Edits are not blocked while the submit is pending.
	require.NoError(t, s.SetValue(validation.FieldEmail, "other@example.com"))

	close(sub.release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, sub.calls.Load())
	assert.False(t, s.IsSubmitting())
}

func TestSubmit_ResultDroppedAfterClose(t *testing.T) {
	sub := newBlockingSubmitter()
	sub.err = errors.New("late failure")
	s := newSession(t, validation.KindLogin, sub)
	fill(t, s, map[validation.Field]string{
		validation.FieldEmail:    "user@example.com",
		validation.FieldPassword: "abcdef",
	})

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-sub.started

	s.Close()
	close(sub.release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, validation.ErrSessionClosed)
	case <-time.After(time.Second):
		t.Fatal("submit did not return")
	}
	assert.NotContains(t, s.Errors(), validation.FieldSubmit)
	assert.ErrorIs(t, s.SetValue(validation.FieldEmail, "x"), validation.ErrSessionClosed)
	assert.ErrorIs(t, s.Submit(context.Background()), validation.ErrSessionClosed)
}

func TestClose_RejectsEveryMutator(t *testing.T) {
	s := newSession(t, validation.KindLogin, nil)
	require.NoError(t, s.SetRememberMe(true))
	s.Close()

	assert.ErrorIs(t, s.SetValue(validation.FieldEmail, "user@example.com"), validation.ErrSessionClosed)
	assert.ErrorIs(t, s.Blur(validation.FieldEmail), validation.ErrSessionClosed)
	assert.ErrorIs(t, s.SetRememberMe(false), validation.ErrSessionClosed)
	assert.ErrorIs(t, s.Submit(context.Background()), validation.ErrSessionClosed)

	st := s.Snapshot()
	assert.True(t, st.RememberMe, "a closed session keeps its last state")
	assert.Empty(t, st.Value(validation.FieldEmail))
}

func TestState_VisibleErrorAfterAttempt(t *testing.T) {
	st := validation.State{
		Errors:    map[validation.Field]string{validation.FieldEmail: "Email is required"},
		Touched:   map[validation.Field]bool{},
		Attempted: false,
	}
	assert.Empty(t, st.VisibleError(validation.FieldEmail))

	st.Attempted = true
	assert.Equal(t, "Email is required", st.VisibleError(validation.FieldEmail))
	assert.True(t, st.HasVisibleError(validation.FieldEmail))
}
