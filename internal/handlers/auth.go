package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/identity"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/internal/viewstate"
	"github.com/nfrund/clubportal/web/src/templates/pages"
)

// Messages shown when the backend rejects a request without saying why.
const (
	msgLoginFailed   = "Login failed"
	msgSignupFailed  = "Signup failed"
	msgSignupOK      = "Signup successful! Please log in."
	msgAdminLoginOK  = "Admin login successful"
	msgMissingFields = "Please fill in all required fields."
)

// Where each flow lands after success.
const (
	pathAfterLogin      = "/byte-register"
	pathAfterSignup     = "/login"
	pathAfterLogout     = "/login"
	pathAfterAdminLogin = "/admin/dashboard"
)

// AuthHandler handles the member and admin authentication pages.
type AuthHandler struct {
	backend *backend.Factory
	views   *viewstate.Registry
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(factory *backend.Factory, views *viewstate.Registry) *AuthHandler {
	return &AuthHandler{backend: factory, views: views}
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	chrome := NewChrome(c, "Login", "")
	return Page(c, http.StatusOK, chrome, pages.Login(chrome.CSRFToken, dto.LoginForm{}))
}

// LoginPost signs the member in against the backend (POST /login). The
// backend's session cookie is captured into the portal session, and any views
// from a previous identity are torn down.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	form := dto.LoginForm{Email: strings.TrimSpace(req.Email)}
	if err := c.Validate(&req); err != nil {
		form.Error = msgMissingFields
		return h.renderLogin(c, http.StatusUnprocessableEntity, form)
	}

	id, err := CurrentIdentity(c)
	if err != nil {
		return err
	}
	id.User.Clear()

	client := h.backend.For(id.User)
	if _, err := client.Login(ctx, backend.LoginRequest{Email: form.Email, Password: req.Password}); err != nil {
		logger.Info("Login rejected", "email", form.Email, "error", err)
		form.Error = backend.MessageOr(err, msgLoginFailed)
		SaveIdentity(c, id)
		return h.renderLogin(c, http.StatusOK, form)
	}

	h.views.DropView(identity.Rotate(id))
	if err := identity.Save(c, id); err != nil {
		return err
	}
	logger.Info("Member signed in", "email", form.Email)
	return middleware.Redirect(c, pathAfterLogin)
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, form dto.LoginForm) error {
	chrome := NewChrome(c, "Login", "")
	return Page(c, status, chrome, pages.Login(chrome.CSRFToken, form))
}

// SignupGet renders the signup page (GET /signup).
func (h *AuthHandler) SignupGet(c echo.Context) error {
	chrome := NewChrome(c, "Sign up", "")
	return Page(c, http.StatusOK, chrome, pages.Signup(chrome.CSRFToken, dto.SignupForm{}))
}

// SignupPost creates an account (POST /signup). The call is made without a
// credential; the new member signs in afterwards.
func (h *AuthHandler) SignupPost(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	form := dto.SignupForm{
		Name:     req.Name,
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		Gender:   req.Gender,
		Semester: req.Semester,
		Class:    req.Class,
	}
	if err := c.Validate(&req); err != nil {
		form.Error = msgMissingFields
		return h.renderSignup(c, http.StatusUnprocessableEntity, form)
	}

	resp, err := h.backend.For(backend.Anonymous{}).Signup(ctx, backend.SignupRequest{
		Name:     req.Name,
		Email:    form.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Gender:   req.Gender,
		Semester: req.Semester,
		Class:    req.Class,
	})
	if err != nil {
		middleware.FromContext(ctx).Info("Signup rejected", "email", form.Email, "error", err)
		form.Error = backend.MessageOr(err, msgSignupFailed)
		return h.renderSignup(c, http.StatusOK, form)
	}

	msg := resp.Message
	if strings.TrimSpace(msg) == "" {
		msg = msgSignupOK
	}
	view.SetFlashSuccess(c, msg)
	return middleware.Redirect(c, pathAfterSignup)
}

func (h *AuthHandler) renderSignup(c echo.Context, status int, form dto.SignupForm) error {
	chrome := NewChrome(c, "Sign up", "")
	return Page(c, status, chrome, pages.Signup(chrome.CSRFToken, form))
}

// LogoutPost drops the backend credentials and tears down every view the
// browser had open (POST /logout).
func (h *AuthHandler) LogoutPost(c echo.Context) error {
	if id, err := identity.Load(c); err == nil {
		h.views.DropView(id.ViewID)
	}
	if err := identity.Clear(c); err != nil {
		return err
	}
	return middleware.Redirect(c, pathAfterLogout)
}

// AdminLoginGet renders the admin login page (GET /admin/login).
func (h *AuthHandler) AdminLoginGet(c echo.Context) error {
	chrome := NewChrome(c, "Admin Login", dto.NavAdmin)
	return Page(c, http.StatusOK, chrome, pages.AdminLogin(chrome.CSRFToken, dto.AdminLoginForm{}))
}

// AdminLoginPost signs an administrator in on the admin base URL (POST /admin/login).
func (h *AuthHandler) AdminLoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	form := dto.AdminLoginForm{Email: strings.TrimSpace(req.Email)}
	if err := c.Validate(&req); err != nil {
		form.Error = msgMissingFields
		return h.renderAdminLogin(c, http.StatusUnprocessableEntity, form)
	}

	id, err := CurrentIdentity(c)
	if err != nil {
		return err
	}
	id.Admin.Clear()

	resp, err := h.backend.Admin(id.Admin).AdminLogin(ctx, backend.LoginRequest{Email: form.Email, Password: req.Password})
	if err != nil {
		logger.Info("Admin login rejected", "email", form.Email, "error", err)
		form.Error = backend.MessageOr(err, msgLoginFailed)
		SaveIdentity(c, id)
		return h.renderAdminLogin(c, http.StatusOK, form)
	}

	if err := identity.Save(c, id); err != nil {
		return err
	}
	msg := resp.Message
	if strings.TrimSpace(msg) == "" {
		msg = msgAdminLoginOK
	}
	view.SetFlashSuccess(c, msg)
	logger.Info("Admin signed in", "email", form.Email)
	return middleware.Redirect(c, pathAfterAdminLogin)
}

func (h *AuthHandler) renderAdminLogin(c echo.Context, status int, form dto.AdminLoginForm) error {
	chrome := NewChrome(c, "Admin Login", dto.NavAdmin)
	return Page(c, status, chrome, pages.AdminLogin(chrome.CSRFToken, form))
}
