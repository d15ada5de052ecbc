package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nfrund/authforms/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// errInvalidCredentials makes the command exit non-zero without an extra message.
var errInvalidCredentials = errors.New("credentials are invalid")

func newCheckCmd() *cobra.Command {
	var (
		form     string
		email    string
		password string
		confirm  string
		lang     string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate credentials the way the forms do",
		Long: `Run a full submit against a throwaway form session and print the
error for each field. Nothing is sent anywhere.

Examples:
  authforms check --email user@example.com --password secret1
  authforms check --form register --email a@b.com --password abcdef --confirm abcdxx
  authforms check --lang de --email nope --password x`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := validation.ParseKind(form)
			if err != nil {
				return err
			}
			if err := checkLanguage(lang); err != nil {
				return err
			}
			session, err := validation.NewSession(kind, nil, validation.WithPrinter(validation.NewPrinter(lang)))
			if err != nil {
				return err
			}
			values := map[validation.Field]string{
				validation.FieldEmail:           email,
				validation.FieldPassword:        password,
				validation.FieldConfirmPassword: confirm,
			}
			for _, f := range kind.Fields() {
				if err := session.SetValue(f, values[f]); err != nil {
					return err
				}
			}

			submitErr := session.Submit(cmd.Context())
			errs := session.Errors()
			out := cmd.OutOrStdout()
			for _, f := range kind.Fields() {
				msg := errs[f]
				if msg == "" {
					msg = "ok"
				}
				fmt.Fprintf(out, "%-16s %s\n", f+":", msg)
			}

			switch {
			case errors.Is(submitErr, validation.ErrInvalidForm):
				cmd.SilenceErrors = true
				return errInvalidCredentials
			case submitErr != nil:
				return submitErr
			}
			fmt.Fprintf(out, "%s form is valid\n", kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&form, "form", validation.KindLogin.String(), "form to validate: login or register")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (register only)")
	cmd.Flags().StringVar(&lang, "lang", "en", "message language, e.g. en or de")
	return cmd
}

// checkLanguage rejects a --lang the message catalog has no translation for,
// instead of silently falling back to English.
func checkLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", lang, err)
	}
	base, _ := tag.Base()
	names := make([]string, 0, len(validation.SupportedLanguages()))
	for _, supported := range validation.SupportedLanguages() {
		if b, _ := supported.Base(); b == base {
			return nil
		}
		names = append(names, supported.String())
	}
	return fmt.Errorf("unsupported --lang %q (supported: %s)", lang, strings.Join(names, ", "))
}
