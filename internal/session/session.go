// Package session maps the signed cookie session onto the authenticated
// identity and the one-shot flash queue.
package session

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	cookieName  = "workout_session"
	keyUserID   = "user_id"
	keyUsername = "username"
)

// Flash severity levels, matching the alert classes in the templates.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Flash is a one-shot notice shown on the next rendered page, then discarded.
type Flash struct {
	Level   string
	Message string
}

// Identity is the authenticated user carried by the session.
type Identity struct {
	UserID   int64
	Username string
}

func init() {
	gob.Register(Flash{})
}

// Middleware backs sessions with a signed cookie store.
func Middleware(secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cookieName, store)
}

// SetLoginUser stores the authenticated identity in the session.
func SetLoginUser(c *gin.Context, id int64, username string) error {
	s := sessions.Default(c)
	s.Set(keyUserID, id)
	s.Set(keyUsername, username)
	return s.Save()
}

// CurrentUser returns the identity stored in the session. The second
// return value is false for unauthenticated requests.
func CurrentUser(c *gin.Context) (Identity, bool) {
	s := sessions.Default(c)
	id, ok := s.Get(keyUserID).(int64)
	if !ok {
		return Identity{}, false
	}
	username, _ := s.Get(keyUsername).(string)
	return Identity{UserID: id, Username: username}, true
}

// Clear removes all session state. Clearing an absent session is a no-op.
// The cookie itself stays alive so a flash queued right after (e.g. the
// logout notice) still reaches the next page.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// AddFlash queues a one-shot notice for the next rendered page.
func AddFlash(c *gin.Context, level, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Level: level, Message: message})
	if err := s.Save(); err != nil {
		slog.Error("save session after flash", "error", err)
	}
}

// TakeFlashes drains and returns any pending notices. Reading consumes
// them; they will not appear again.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		slog.Error("save session after draining flashes", "error", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
