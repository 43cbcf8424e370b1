package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/domain"
	"github.com/msomdec/workout-tracker/internal/service"
	"github.com/msomdec/workout-tracker/internal/session"
)

// AuthHandler handles registration, login, logout, and the dashboard.
type AuthHandler struct {
	auth         *service.AuthService
	loginLimiter *service.TokenBucket
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, loginLimiter *service.TokenBucket) *AuthHandler {
	return &AuthHandler{auth: auth, loginLimiter: loginLimiter}
}

// HandleHome renders the combined registration/login page.
// GET /
func (h *AuthHandler) HandleHome(c *gin.Context) {
	render(c, "register_login.html", nil)
}

// HandleRegister processes the registration form.
// POST /register
func (h *AuthHandler) HandleRegister(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.auth.Register(c.Request.Context(), username, email, password)
	switch {
	case err == nil:
		session.AddFlash(c, session.LevelSuccess, "Registration successful! Please log in.")
	case errors.Is(err, domain.ErrInvalidInput):
		session.AddFlash(c, session.LevelDanger, "All fields are required!")
	case errors.Is(err, domain.ErrDuplicateEmail):
		session.AddFlash(c, session.LevelWarning, "Email already registered! Please log in.")
	case errors.Is(err, domain.ErrDuplicateUsername):
		session.AddFlash(c, session.LevelWarning, "Username already taken! Please choose another.")
	default:
		slog.Error("register user", "error", err)
		session.AddFlash(c, session.LevelDanger, "An unexpected error occurred. Please try again.")
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// HandleLogin verifies credentials and starts a session.
// POST /login
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	if !h.loginLimiter.Allow(c.ClientIP()) {
		session.AddFlash(c, session.LevelDanger, "Too many login attempts. Please wait a moment.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			slog.Error("login user", "error", err)
		}
		// One generic message for unknown email and wrong password alike.
		session.AddFlash(c, session.LevelDanger, "Invalid email or password. Try again.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := session.SetLoginUser(c, user.ID, user.Username); err != nil {
		slog.Error("start session", "error", err)
		session.AddFlash(c, session.LevelDanger, "An unexpected error occurred. Please try again.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	session.AddFlash(c, session.LevelSuccess, "Welcome, "+user.Username+"!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// HandleLogout clears the session unconditionally.
// GET /logout
func (h *AuthHandler) HandleLogout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		slog.Error("clear session", "error", err)
	}
	session.AddFlash(c, session.LevelInfo, "Logged out successfully!")
	c.Redirect(http.StatusFound, "/")
}

// HandleDashboard renders the dashboard for the logged-in user.
// GET /dashboard
func (h *AuthHandler) HandleDashboard(c *gin.Context) {
	render(c, "dashboard.html", nil)
}
