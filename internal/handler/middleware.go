package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/session"
)

// RequireAuth is middleware that protects routes requiring authentication.
// Requests without a logged-in session are redirected to the entry page
// with a notice; the handler chain is aborted.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.CurrentUser(c); !ok {
			session.AddFlash(c, session.LevelDanger, "Please log in first!")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SecurityHeaders sets common security headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Next()
	}
}
