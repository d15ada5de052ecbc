package validation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Keys are looked up in the catalog; English is the fallback.
const (
	msgEmailRequired    = "email.required"
	msgEmailInvalid     = "email.invalid"
	msgPasswordRequired = "password.required"
	msgPasswordShort    = "password.too_short"
	msgConfirmRequired  = "confirm.required"
	msgConfirmMismatch  = "confirm.mismatch"
	msgLoginFailed      = "submit.login_failed"
	msgRegisterFailed   = "submit.register_failed"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgEmailRequired:    "Email is required",
		msgEmailInvalid:     "Please enter a valid email address",
		msgPasswordRequired: "Password is required",
		msgPasswordShort:    "Password must be at least 6 characters",
		msgConfirmRequired:  "Please confirm your password",
		msgConfirmMismatch:  "Passwords do not match",
		msgLoginFailed:      "Login failed. Please check your credentials and try again.",
		msgRegisterFailed:   "Registration failed. Please try again.",
	},
	language.German: {
		msgEmailRequired:    "E-Mail ist erforderlich",
		msgEmailInvalid:     "Bitte gib eine gültige E-Mail-Adresse ein",
		msgPasswordRequired: "Passwort ist erforderlich",
		msgPasswordShort:    "Das Passwort muss mindestens 6 Zeichen lang sein",
		msgConfirmRequired:  "Bitte bestätige dein Passwort",
		msgConfirmMismatch:  "Passwörter stimmen nicht überein",
		msgLoginFailed:      "Anmeldung fehlgeschlagen. Bitte überprüfe deine Zugangsdaten und versuche es erneut.",
		msgRegisterFailed:   "Registrierung fehlgeschlagen. Bitte versuche es erneut.",
	},
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// supported is ordered so English wins when nothing matches.
var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

// SupportedLanguages lists the languages the message catalog carries.
func SupportedLanguages() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// NewPrinter returns a printer for the best supported match of the given
// language preferences, e.g. the raw Accept-Language header value.
func NewPrinter(preferences ...string) *message.Printer {
	_, idx := language.MatchStrings(matcher, preferences...)
	return message.NewPrinter(supported[idx], message.Catalog(messages))
}

var defaultPrinter = message.NewPrinter(language.English, message.Catalog(messages))

func messageKey(f Field, code Code) string {
	switch code {
	case CodeRequiredField:
		switch f {
		case FieldEmail:
			return msgEmailRequired
		case FieldPassword:
			return msgPasswordRequired
		case FieldConfirmPassword:
			return msgConfirmRequired
		}
	case CodeInvalidFormat:
		return msgEmailInvalid
	case CodeTooShort:
		return msgPasswordShort
	case CodeMismatch:
		return msgConfirmMismatch
	}
	return ""
}

func submitFailureKey(k Kind) string {
	if k == KindRegister {
		return msgRegisterFailed
	}
	return msgLoginFailed
}

// Message renders the human-readable text for a failing field in English.
// It returns "" for a passing code.
func Message(f Field, code Code) string {
	return messageWith(defaultPrinter, f, code)
}

// SubmitFailureMessage is the form-level banner shown when the submitter fails.
func SubmitFailureMessage(k Kind) string {
	return defaultPrinter.Sprintf(submitFailureKey(k))
}

func messageWith(p *message.Printer, f Field, code Code) string {
	key := messageKey(f, code)
	if key == "" {
		return ""
	}
	return p.Sprintf(key)
}
