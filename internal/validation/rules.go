package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the minimum number of characters a password needs.
const MinPasswordLength = 6

// emailPattern accepts "local@domain.tld" where no part contains whitespace
// or a second '@'. The class spells out \v, the Unicode separators and BOM so
// the match agrees with what browsers treat as whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

const emailTag = "form_email"

var passwordLengthTag = "min=" + strconv.Itoa(MinPasswordLength)

// rules is shared by every session; validator.Validate is safe for concurrent use.
var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateEmail checks that the value is present and shaped like an address.
func ValidateEmail(value string) Code {
	if rules.Var(value, "required") != nil {
		return CodeRequiredField
	}
	if rules.Var(value, emailTag) != nil {
		return CodeInvalidFormat
	}
	return ""
}

// ValidatePassword checks presence and a minimum length counted in characters.
func ValidatePassword(value string) Code {
	if rules.Var(value, "required") != nil {
		return CodeRequiredField
	}
	if rules.Var(value, passwordLengthTag) != nil {
		return CodeTooShort
	}
	return ""
}

// ValidateConfirmPassword checks that the confirmation is present and equal to password.
func ValidateConfirmPassword(confirm, password string) Code {
	if rules.Var(confirm, "required") != nil {
		return CodeRequiredField
	}
	if rules.VarWithValue(confirm, password, "eqcsfield") != nil {
		return CodeMismatch
	}
	return ""
}

// check runs the rule for one field against a full set of values.
func check(f Field, values map[Field]string) Code {
	switch f {
	case FieldEmail:
		return ValidateEmail(values[FieldEmail])
	case FieldPassword:
		return ValidatePassword(values[FieldPassword])
	case FieldConfirmPassword:
		return ValidateConfirmPassword(values[FieldConfirmPassword], values[FieldPassword])
	}
	return ""
}
