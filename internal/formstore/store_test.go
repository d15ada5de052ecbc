package formstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/formstore"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *formstore.Store {
	return formstore.New(func(kind validation.Kind, opts ...validation.Option) (*validation.Session, error) {
		return validation.NewSession(kind, nil, opts...)
	})
}

func TestStore_MountAndGet(t *testing.T) {
	s := newStore()

	id, session, err := s.Mount(validation.KindLogin)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(id, validation.KindLogin)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = s.Get(id, validation.KindRegister)
	assert.ErrorIs(t, err, formstore.ErrNotFound)
}

func TestStore_MountsAreIndependent(t *testing.T) {
	s := newStore()
	_, first, err := s.Mount(validation.KindRegister)
	require.NoError(t, err)
	_, second, err := s.Mount(validation.KindRegister)
	require.NoError(t, err)

	require.NoError(t, first.SetValue(validation.FieldEmail, "a@b.com"))

	assert.Empty(t, second.Snapshot().Value(validation.FieldEmail))
}

func TestStore_Unmount(t *testing.T) {
	s := newStore()
	id, session, err := s.Mount(validation.KindLogin)
	require.NoError(t, err)

	s.Unmount(id)
	s.Unmount(id)

	assert.Zero(t, s.Len())
	_, err = s.Get(id, validation.KindLogin)
	assert.ErrorIs(t, err, formstore.ErrNotFound)
	assert.ErrorIs(t, session.Submit(context.Background()), validation.ErrSessionClosed)
}

func TestStore_Lookup(t *testing.T) {
	s := newStore()
	id, _, err := s.Mount(validation.KindRegister)
	require.NoError(t, err)

	gotID, _, err := s.Lookup(id.String(), validation.KindRegister)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	_, _, err = s.Lookup("not-a-uuid", validation.KindRegister)
	assert.ErrorIs(t, err, formstore.ErrNotFound)
}

func TestStore_FactoryError(t *testing.T) {
	s := formstore.New(func(kind validation.Kind, opts ...validation.Option) (*validation.Session, error) {
		return validation.NewSession(kind, nil, opts...)
	})
	_, _, err := s.Mount(validation.Kind("reset"))
	assert.ErrorIs(t, err, validation.ErrUnknownKind)
}

func TestStore_SweepRemovesIdleSessions(t *testing.T) {
	s := newStore()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	stale, staleSession, err := s.Mount(validation.KindLogin)
	require.NoError(t, err)
	now = now.Add(20 * time.Minute)
	fresh, _, err := s.Mount(validation.KindRegister)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep(15*time.Minute))

	_, err = s.Get(stale, validation.KindLogin)
	assert.ErrorIs(t, err, formstore.ErrNotFound)
	assert.ErrorIs(t, staleSession.Blur(validation.FieldEmail), validation.ErrSessionClosed)
	_, err = s.Get(fresh, validation.KindRegister)
	assert.NoError(t, err)
}

func TestStore_GetRefreshesIdleTimer(t *testing.T) {
	s := newStore()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	id, _, err := s.Mount(validation.KindLogin)
	require.NoError(t, err)
	now = now.Add(10 * time.Minute)
	_, err = s.Get(id, validation.KindLogin)
	require.NoError(t, err)
	now = now.Add(10 * time.Minute)

	assert.Zero(t, s.Sweep(15*time.Minute))
}
