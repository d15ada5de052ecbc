package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/formstore"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/theme"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	"github.com/nfrund/authforms/web/src/templates/components"
	"github.com/nfrund/authforms/web/src/templates/layouts"
	"github.com/nfrund/authforms/web/src/templates/pages"
)

// switchParam carries the id of the form a visitor leaves when following the
// link to the other form. It is per tab, unlike a cookie.
const switchParam = "from"

// htmx response headers.
const (
	headerHXRedirect = "HX-Redirect"
	headerHXRefresh  = "HX-Refresh"
)

// AuthHandler serves the login and registration forms.
type AuthHandler struct {
	forms *formstore.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(forms *formstore.Store) *AuthHandler {
	return &AuthHandler{forms: forms}
}

// LoginGetHandler renders the login page (GET /login).
func (h *AuthHandler) LoginGetHandler(c echo.Context) error {
	return h.renderPage(c, validation.KindLogin, "Login")
}

// RegisterGetHandler renders the registration page (GET /register).
func (h *AuthHandler) RegisterGetHandler(c echo.Context) error {
	return h.renderPage(c, validation.KindRegister, "Register")
}

func (h *AuthHandler) renderPage(c echo.Context, kind validation.Kind, title string) error {
	// Switching forms discards the one this tab showed. Forms of other tabs,
	// and forms left by closing or reloading, are left to the idle sweep.
	if id, err := uuid.Parse(c.QueryParam(switchParam)); err == nil {
		h.forms.Unmount(id)
	}

	printer := validation.NewPrinter(c.Request().Header.Get("Accept-Language"))
	id, session, err := h.forms.Mount(kind, validation.WithPrinter(printer))
	if err != nil {
		return err
	}
	middleware.FromContext(c.Request().Context()).Debug("Form mounted", "form", kind, "form_id", id)

	data := auth.FormData{
		FormID: id.String(),
		State:  session.Snapshot(),
		Theme:  theme.FromContext(c),
	}
	flashes := view.GetFlashData(c)
	pageContent := view.AdaptGomponentToTempl(pages.ForKind(data))
	finalComponent := layouts.Base(title, data.Theme, flashes, pageContent)

	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return finalComponent.Render(c.Request().Context(), c.Response().Writer)
}

// FieldPost stores an edited value (POST /{form}/fields/:field).
func (h *AuthHandler) FieldPost(kind validation.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req FieldRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		session, err := h.lookup(c, kind, req.FormID)
		if session == nil {
			return err
		}
		field, err := req.ParsedField()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := session.SetValue(field, c.FormValue(string(field))); err != nil {
			return h.sessionError(c, err)
		}
		return h.renderUpdates(c, req.FormID, session)
	}
}

// BlurPost marks a field touched (POST /{form}/blur/:field). The posted value
// is stored first so a blur that beats the debounced input event still
// validates what the user typed.
func (h *AuthHandler) BlurPost(kind validation.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req FieldRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		session, err := h.lookup(c, kind, req.FormID)
		if session == nil {
			return err
		}
		field, err := req.ParsedField()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := syncValue(c, session, field); err != nil {
			return h.sessionError(c, err)
		}
		if err := session.Blur(field); err != nil {
			return h.sessionError(c, err)
		}
		return h.renderUpdates(c, req.FormID, session)
	}
}

// RevealPost swaps a password input between hidden and plain text
// (POST /{form}/reveal/:field).
func (h *AuthHandler) RevealPost(kind validation.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req RevealRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		session, err := h.lookup(c, kind, req.FormID)
		if session == nil {
			return err
		}
		field, err := req.ParsedField()
		if err != nil || field == validation.FieldEmail {
			return echo.NewHTTPError(http.StatusBadRequest, "only password fields can be revealed")
		}
		if err := syncValue(c, session, field); err != nil {
			return h.sessionError(c, err)
		}
		data := h.formData(c, req.FormID, session)
		data.Reveal = map[validation.Field]bool{field: req.Reveal}
		return c.Render(http.StatusOK, "", components.FieldInput(data, field))
	}
}

// RememberPost records the "remember me" checkbox (POST /login/remember).
func (h *AuthHandler) RememberPost(c echo.Context) error {
	var req RememberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	session, err := h.lookup(c, validation.KindLogin, req.FormID)
	if session == nil {
		return err
	}
	if err := session.SetRememberMe(req.Checked()); err != nil {
		return h.sessionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPost acknowledges the "forgot password" link (POST /login/forgot).
// Recovery is out of scope; the request is only logged.
func (h *AuthHandler) ForgotPost(c echo.Context) error {
	var req FormRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if session, err := h.lookup(c, validation.KindLogin, req.FormID); session == nil {
		return err
	}
	middleware.FromContext(c.Request().Context()).Info("Forgot password requested", "form_id", req.FormID)
	return c.NoContent(http.StatusNoContent)
}

// SubmitPost submits the whole form (POST /{form}). Values in the request
// body win over the session's copy since the last keystrokes may still be
// debouncing in the browser.
func (h *AuthHandler) SubmitPost(kind validation.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req FormRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		session, err := h.lookup(c, kind, req.FormID)
		if session == nil {
			return err
		}
		for _, f := range kind.Fields() {
			if err := syncValue(c, session, f); err != nil {
				return h.sessionError(c, err)
			}
		}
		if kind == validation.KindLogin {
			if err := session.SetRememberMe(c.FormValue("remember_me") == "on"); err != nil {
				return h.sessionError(c, err)
			}
		}

		logger := middleware.FromContext(c.Request().Context())
		// The submit outlives a dropped connection; only Unmount abandons it.
		err = session.Submit(context.WithoutCancel(c.Request().Context()))
		switch {
		case err == nil:
			logger.Info("Form submission succeeded", "form", kind, "form_id", req.FormID)
			view.SetFlashSuccess(c, successMessage(kind))
			if id, perr := uuid.Parse(req.FormID); perr == nil {
				h.forms.Unmount(id)
			}
			c.Response().Header().Set(headerHXRedirect, "/login")
			return c.NoContent(http.StatusOK)
		case errors.Is(err, validation.ErrInvalidForm):
			logger.Debug("Form submission rejected", "form", kind, "errors", len(session.Errors()))
			return h.renderUpdates(c, req.FormID, session)
		case errors.Is(err, validation.ErrSubmitInProgress):
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, validation.ErrSubmitFailed):
			logger.Warn("Form submission failed", "form", kind, "error", err)
			return h.renderUpdates(c, req.FormID, session)
		default:
			return h.sessionError(c, err)
		}
	}
}

func successMessage(kind validation.Kind) string {
	if kind == validation.KindRegister {
		return "Account created. You can sign in now."
	}
	return "Signed in successfully."
}

// lookup resolves the mounted session. When it is gone (expired, left through
// the switch link or lost in a restart) the page is told to reload; the session is
// then nil and the returned error is what the handler should return.
func (h *AuthHandler) lookup(c echo.Context, kind validation.Kind, formID string) (*validation.Session, error) {
	_, session, err := h.forms.Lookup(formID, kind)
	if err != nil {
		return nil, h.sessionError(c, err)
	}
	return session, nil
}

func (h *AuthHandler) sessionError(c echo.Context, err error) error {
	if errors.Is(err, validation.ErrUnknownField) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, formstore.ErrNotFound) || errors.Is(err, validation.ErrSessionClosed) {
		middleware.FromContext(c.Request().Context()).Debug("Form session gone, refreshing page", "error", err)
		c.Response().Header().Set(headerHXRefresh, "true")
		return c.NoContent(http.StatusNoContent)
	}
	return err
}

func (h *AuthHandler) formData(c echo.Context, formID string, session *validation.Session) auth.FormData {
	return auth.FormData{
		FormID: formID,
		State:  session.Snapshot(),
		Theme:  theme.FromContext(c),
	}
}

func (h *AuthHandler) renderUpdates(c echo.Context, formID string, session *validation.Session) error {
	return c.Render(http.StatusOK, "", components.FormUpdates(h.formData(c, formID, session)))
}

// syncValue stores the field's value when the request carries it.
func syncValue(c echo.Context, session *validation.Session, f validation.Field) error {
	params, err := c.FormParams()
	if err != nil || !params.Has(string(f)) {
		return nil
	}
	return session.SetValue(f, params.Get(string(f)))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
