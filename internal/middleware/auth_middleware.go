package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classlens/admin-panel/internal/pkg/session"
)

// sessionKey is the gin context key holding the resolved session.
const sessionKey = "admin_session"

// AuthMiddleware gates the dashboard behind a live session.
type AuthMiddleware struct {
	sessions *session.Manager
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession resolves the session cookie and redirects to the login page
// when there is no live session behind it. Expired cookies are cleared on
// the way out.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.sessions.CookieName())
		if err != nil || id == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		sess, err := m.sessions.Get(id)
		if err != nil {
			c.SetCookie(m.sessions.CookieName(), "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session resolved by RequireSession.
func CurrentSession(c *gin.Context) *session.Session {
	if value, ok := c.Get(sessionKey); ok {
		if sess, ok := value.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// Token returns the access token of the current session, empty when the
// request is unauthenticated.
func Token(c *gin.Context) string {
	if sess := CurrentSession(c); sess != nil {
		return sess.AccessToken
	}
	return ""
}
