package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

const (
	ctxSessionKey = "session"
	ctxUserKey    = "user"
)

// SessionFromContext returns the session injected by RequireSession.
func SessionFromContext(c *gin.Context) (*domain.Session, bool) {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*domain.Session)
	return s, ok
}

// UserFromContext returns the resolved profile injected by RequireSession.
// Handlers behind the guard can rely on it being present; they do not
// re-check roles themselves.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
