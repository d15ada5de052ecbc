package submit

import (
	"context"

	"github.com/nfrund/authforms/internal/validation"
)

// Func adapts a plain function to validation.Submitter.
type Func func(ctx context.Context, kind validation.Kind, creds validation.Credentials) error

// Submit calls f.
func (f Func) Submit(ctx context.Context, kind validation.Kind, creds validation.Credentials) error {
	return f(ctx, kind, creds)
}
