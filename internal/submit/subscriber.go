package submit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/authforms/internal/pubsub"
)

// LogSubmissions subscribes to both submission topics and writes every event
// to the logger. It returns once the subscriptions are registered.
func LogSubmissions(ctx context.Context, sub pubsub.Subscriber, logger *slog.Logger) error {
	for _, event := range Events() {
		err := sub.Subscribe(ctx, event.Name(), func(ctx context.Context, msg pubsub.Message) error {
			payload, err := pubsub.Decode(event, msg)
			if err != nil {
				return err
			}
			logger.InfoContext(ctx, "Submission received",
				"topic", event.Name(),
				"form", payload.Kind,
				"email", payload.Email,
				"remember_me", payload.RememberMe,
				"at", payload.At,
			)
			return nil
		})
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", event.Name(), err)
		}
	}
	return nil
}
