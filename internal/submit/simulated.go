package submit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/validation"
)

// DefaultDelay is the latency of the simulated backend.
const DefaultDelay = 1500 * time.Millisecond

// Simulated stands in for an authentication backend. It waits a fixed delay,
// logs the attempt and publishes a SubmissionEvent.
type Simulated struct {
	delay     time.Duration
	publisher pubsub.Publisher
	logger    *slog.Logger
	failWith  error
	now       func() time.Time
}

// Option configures a Simulated submitter.
type Option func(*Simulated)

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulated) { s.logger = l }
}

// FailWith makes every submit fail with err after the delay.
func FailWith(err error) Option {
	return func(s *Simulated) { s.failWith = err }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Simulated) { s.now = now }
}

// NewSimulated creates a submitter. A nil publisher skips event publishing.
func NewSimulated(delay time.Duration, publisher pubsub.Publisher, opts ...Option) *Simulated {
	s := &Simulated{
		delay:     delay,
		publisher: publisher,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements validation.Submitter.
func (s *Simulated) Submit(ctx context.Context, kind validation.Kind, creds validation.Credentials) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if s.failWith != nil {
		s.logger.WarnContext(ctx, "Simulated submit failure", "form", kind, "email", creds.Email, "error", s.failWith)
		return s.failWith
	}

	attrs := []any{"form", kind, "email", creds.Email}
	if kind == validation.KindLogin {
		attrs = append(attrs, "remember_me", creds.RememberMe)
	}
	s.logger.InfoContext(ctx, "Form submitted", attrs...)

	if s.publisher == nil {
		return nil
	}
	event := SubmissionEvent{
		Kind:       kind,
		Email:      creds.Email,
		RememberMe: creds.RememberMe,
		At:         s.now().UTC(),
	}
	if err := pubsub.Publish(ctx, s.publisher, EventFor(kind), event); err != nil {
		return fmt.Errorf("publish submission: %w", err)
	}
	return nil
}
