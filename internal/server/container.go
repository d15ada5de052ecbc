package server

import (
	"errors"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/formstore"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/submit"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/samber/do/v2"
)

// errSimulatedFailure is returned by the submitter when SUBMIT_FAIL is set.
var errSimulatedFailure = errors.New("simulated backend failure")

// NewInjector registers every application service. Services are built lazily
// on first invocation and shared afterwards.
func NewInjector(cfg config.Provider) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})

	do.Provide(i, func(i do.Injector) (validation.Submitter, error) {
		cfg := do.MustInvoke[config.Provider](i)
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)
		var opts []submit.Option
		if cfg.GetSubmitFail() {
			opts = append(opts, submit.FailWith(errSimulatedFailure))
		}
		return submit.NewSimulated(cfg.GetSubmitDelay(), bus, opts...), nil
	})

	do.Provide(i, func(i do.Injector) (*formstore.Store, error) {
		submitter := do.MustInvoke[validation.Submitter](i)
		return formstore.New(func(kind validation.Kind, opts ...validation.Option) (*validation.Session, error) {
			return validation.NewSession(kind, submitter, opts...)
		}), nil
	})

	do.Provide(i, func(i do.Injector) (*handlers.AuthHandler, error) {
		return handlers.NewAuthHandler(do.MustInvoke[*formstore.Store](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.HomeHandler, error) {
		return handlers.NewHomeHandler(), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.ThemeHandler, error) {
		return handlers.NewThemeHandler(), nil
	})

	return i
}
