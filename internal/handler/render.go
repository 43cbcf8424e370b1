package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/session"
)

// render draws an HTML page, attaching any pending flash notices and the
// current username for the navbar.
func render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = session.TakeFlashes(c)
	if id, ok := session.CurrentUser(c); ok {
		data["username"] = id.Username
	}
	c.HTML(http.StatusOK, name, data)
}

// notFound renders the generic not-found response.
func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}
