package formstore

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/validation"
)

// ErrNotFound means no live session exists for the id and kind.
var ErrNotFound = errors.New("form session not found")

// Factory builds a fresh session for a mounted form.
type Factory func(kind validation.Kind, opts ...validation.Option) (*validation.Session, error)

// Store keeps the validation sessions of currently mounted forms in memory.
// Sessions are never persisted; a restart discards them all.
type Store struct {
	factory  Factory
	now      func() time.Time
	sessions sync.Map // uuid.UUID -> *entry
}

type entry struct {
	kind     validation.Kind
	session  *validation.Session
	lastSeen atomic.Int64 // unix nanos
}

// New creates a Store that builds sessions with factory.
func New(factory Factory) *Store {
	return &Store{factory: factory, now: time.Now}
}

// Mount creates a session for a newly displayed form.
func (s *Store) Mount(kind validation.Kind, opts ...validation.Option) (uuid.UUID, *validation.Session, error) {
	session, err := s.factory(kind, opts...)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("mount %s form: %w", kind, err)
	}
	id := uuid.New()
	e := &entry{kind: kind, session: session}
	e.lastSeen.Store(s.now().UnixNano())
	s.sessions.Store(id, e)
	return id, session, nil
}

// Get returns the live session with the given id if it drives the expected form.
func (s *Store) Get(id uuid.UUID, kind validation.Kind) (*validation.Session, error) {
	val, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	e := val.(*entry)
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s form", ErrNotFound, id, e.kind)
	}
	e.lastSeen.Store(s.now().UnixNano())
	return e.session, nil
}

// Lookup parses a raw id, as read from a cookie or form field, and calls Get.
func (s *Store) Lookup(raw string, kind validation.Kind) (uuid.UUID, *validation.Session, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	session, err := s.Get(id, kind)
	return id, session, err
}

// Unmount closes and forgets a session. Any submit still running for it
// finishes without touching the discarded state. Unknown ids are ignored.
func (s *Store) Unmount(id uuid.UUID) {
	if val, ok := s.sessions.LoadAndDelete(id); ok {
		val.(*entry).session.Close()
	}
}

// Len returns the number of mounted sessions.
func (s *Store) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep unmounts sessions that have not been used for longer than maxIdle,
// e.g. forms whose tab was closed. It returns how many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle).UnixNano()
	removed := 0
	s.sessions.Range(func(key, val any) bool {
		if val.(*entry).lastSeen.Load() < cutoff {
			s.Unmount(key.(uuid.UUID))
			removed++
		}
		return true
	})
	return removed
}

// SetClock replaces time.Now; tests use it to age sessions.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
