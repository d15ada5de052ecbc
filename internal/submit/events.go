package submit

import (
	"time"

	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/validation"
)

// SubmissionEvent records an accepted form submission. The password is never included.
type SubmissionEvent struct {
	Kind       validation.Kind `json:"kind"`
	Email      string          `json:"email"`
	RememberMe bool            `json:"remember_me,omitempty"`
	At         time.Time       `json:"at"`
}

var (
	LoginSubmitted    = pubsub.NewEvent[SubmissionEvent]("auth.login.submitted", "A login form passed validation and was submitted")
	RegisterSubmitted = pubsub.NewEvent[SubmissionEvent]("auth.register.submitted", "A registration form passed validation and was submitted")
)

// EventFor returns the topic a submission of the given form is published on.
func EventFor(kind validation.Kind) pubsub.Event[SubmissionEvent] {
	if kind == validation.KindRegister {
		return RegisterSubmitted
	}
	return LoginSubmitted
}

// Events lists every submission topic.
func Events() []pubsub.Event[SubmissionEvent] {
	return []pubsub.Event[SubmissionEvent]{LoginSubmitted, RegisterSubmitted}
}
