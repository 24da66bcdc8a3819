package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/middleware"
)

// AuthHandlers handles the authentication surface: login, register, logout,
// profile and the password flows.
type AuthHandlers struct {
	sessions domain.SessionManager
	gateway  domain.AuthGateway
	mw       *middleware.SessionMW
}

// NewAuthHandlers creates the auth handlers.
func NewAuthHandlers(sessions domain.SessionManager, gateway domain.AuthGateway, mw *middleware.SessionMW) *AuthHandlers {
	return &AuthHandlers{
		sessions: sessions,
		gateway:  gateway,
		mw:       mw,
	}
}

// LoginRequest carries the login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
	Remember bool   `form:"remember" json:"remember"`
}

// RegisterRequest carries the sign-up form. Backend-level validation still
// applies; these rules fail fast with the same messages the views expect.
type RegisterRequest struct {
	Name                 string `form:"name" json:"name" binding:"required,min=3"`
	Email                string `form:"email" json:"email" binding:"required,email"`
	Password             string `form:"password" json:"password" binding:"required,min=6"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" binding:"required"`
	Phone                string `form:"phone" json:"phone"`
}

// ForgotPasswordRequest carries the forgot-password form.
type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the reset-password form.
type ResetPasswordRequest struct {
	Email                string `form:"email" json:"email" binding:"required,email"`
	Token                string `form:"token" json:"token" binding:"required"`
	Password             string `form:"password" json:"password" binding:"required,min=6"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" binding:"required"`
}

// ChangePasswordRequest carries the authenticated password change form.
type ChangePasswordRequest struct {
	CurrentPassword      string `form:"current_password" json:"current_password" binding:"required"`
	Password             string `form:"password" json:"password" binding:"required,min=6"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" binding:"required"`
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`\d`)
)

// validateRegistration applies the rules the backend enforces as well, so the
// user gets field-level feedback without a round trip.
func validateRegistration(req *RegisterRequest) domain.FieldErrors {
	fe := domain.FieldErrors{}
	if !lowerPattern.MatchString(req.Password) || !upperPattern.MatchString(req.Password) || !digitPattern.MatchString(req.Password) {
		fe.Add("password", "Password must contain an uppercase letter, a lowercase letter and a digit")
	}
	if req.Password != req.PasswordConfirmation {
		fe.Add("password_confirmation", "Passwords do not match")
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		fe.Add("phone", "Phone number must be 10 or 11 digits")
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// LoginPage renders the login form shell.
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	renderAuthPage(c, "Login")
}

// RegisterPage renders the registration form shell.
func (h *AuthHandlers) RegisterPage(c *gin.Context) {
	renderAuthPage(c, "Register")
}

// ForgotPasswordPage renders the forgot-password form shell.
func (h *AuthHandlers) ForgotPasswordPage(c *gin.Context) {
	renderAuthPage(c, "Forgot password")
}

// ResetPasswordPage renders the reset-password form shell.
func (h *AuthHandlers) ResetPasswordPage(c *gin.Context) {
	renderAuthPage(c, "Reset password")
}

func renderAuthPage(c *gin.Context, title string) {
	if wantsHTML(c) {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<!DOCTYPE html><html><head><title>"+title+"</title></head><body><h1>"+title+"</h1></body></html>"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": strings.ToLower(strings.ReplaceAll(title, " ", "-"))})
}

// Login handles POST /login. On success the session cookie is set and the
// browser is sent to the attached `from` location when it is a safe local
// path, otherwise to the role home.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.mw.SetSessionCookie(c, session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	h.redirectAfterAuth(c, session.User)
}

// Register handles POST /register with the same success contract as Login.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fe := validateRegistration(&req); fe != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": fe})
		return
	}

	session, err := h.sessions.Register(c.Request.Context(), domain.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Phone:                req.Phone,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.mw.SetSessionCookie(c, session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	h.redirectAfterAuth(c, session.User)
}

// Logout handles POST /logout. The cookie is cleared before anything else can
// fail: whatever happens to the durable record, the browser never keeps a
// cookie for a session it asked to end.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sid, ok := h.mw.SessionID(c)
	h.mw.ClearSessionCookie(c)
	if ok {
		if err := h.sessions.Logout(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}

	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out successfully"}})
}

// Me handles GET /account/me behind the authenticated guard.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user}})
}

// ForgotPassword handles POST /forgot-password.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.gateway.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password reset instructions sent"}})
}

// ResetPassword handles POST /reset-password.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.gateway.ResetPassword(c.Request.Context(), domain.ResetPassword{
		Email:                req.Email,
		Token:                req.Token,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}
	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password has been reset"}})
}

// ChangePassword handles POST /account/change-password behind the guard.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.PasswordConfirmation {
		fe := domain.FieldErrors{}
		fe.Add("password_confirmation", "Passwords do not match")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": fe})
		return
	}

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	err := h.gateway.ChangePassword(c.Request.Context(), session.Token, domain.ChangePassword{
		CurrentPassword:      req.CurrentPassword,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password changed"}})
}

// redirectAfterAuth applies the shared post-auth redirect: safe `from` target
// first, role home otherwise. Both guards and these handlers resolve the home
// through the same Role.HomePath table.
func (h *AuthHandlers) redirectAfterAuth(c *gin.Context, user *domain.User) {
	target := middleware.SafeReturnPath(c.Query("from"))
	if target == "" {
		target = user.Role.HomePath()
	}
	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user, "redirect": target}})
}

func (h *AuthHandlers) respondAuthError(c *gin.Context, err error) {
	if fe, ok := domain.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": fe})
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrAccountLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is locked"})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
