package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/authforms/internal/validation"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormRequest identifies the mounted form a request belongs to. Every htmx
// request from inside the form carries the hidden form_id input.
type FormRequest struct {
	FormID string `form:"form_id" validate:"required,uuid4"`
}

// FieldRequest is the DTO for the per-field endpoints (fields, blur, reveal).
type FieldRequest struct {
	FormRequest
	Field string `param:"field" validate:"required,oneof=email password confirmPassword"`
}

// ParsedField returns the validated field name.
func (r FieldRequest) ParsedField() (validation.Field, error) {
	return validation.ParseField(r.Field)
}

// RevealRequest toggles password visibility for one field.
type RevealRequest struct {
	FieldRequest
	Reveal bool `form:"reveal"`
}

// RememberRequest carries the login form's checkbox. Browsers send "on" for a
// checked box and omit the field otherwise.
type RememberRequest struct {
	FormRequest
	RememberMe string `form:"remember_me" validate:"omitempty,eq=on"`
}

// Checked reports whether the checkbox was ticked.
func (r RememberRequest) Checked() bool { return r.RememberMe == "on" }
