package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/session"
)

// SessionMW bundles what the guards need: the session manager and the cookie
// codec. One instance is shared by all route groups.
type SessionMW struct {
	mgr          domain.SessionManager
	codec        *session.CookieCodec
	cookieName   string
	cookieSecure bool
}

// NewSessionMW creates the guard middleware set.
func NewSessionMW(mgr domain.SessionManager, codec *session.CookieCodec, cookieName string, cookieSecure bool) *SessionMW {
	return &SessionMW{
		mgr:          mgr,
		codec:        codec,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// SetSessionCookie writes the signed session cookie for a freshly created
// session.
func (mw *SessionMW) SetSessionCookie(c *gin.Context, sessionID string) error {
	value, err := mw.codec.Issue(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     mw.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   mw.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie removes the session cookie.
func (mw *SessionMW) ClearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     mw.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   mw.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionID extracts and verifies the session ID from the request cookie.
func (mw *SessionMW) SessionID(c *gin.Context) (string, bool) {
	cookie, err := c.Cookie(mw.cookieName)
	if err != nil || cookie == "" {
		return "", false
	}
	sid, err := mw.codec.Decode(cookie)
	if err != nil {
		return "", false
	}
	return sid, true
}

// RequireSession is the authenticated guard. Its decision order follows the
// session lifecycle: unauthenticated requests go to /login with the original
// destination attached; an authenticated session with an unresolved profile
// triggers exactly one shared profile fetch, and while that cannot complete
// the request gets a retry placeholder instead of a login redirect.
func (mw *SessionMW) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := mw.SessionID(c)
		if !ok {
			mw.redirectToLogin(c)
			return
		}

		s, err := mw.mgr.Get(c.Request.Context(), sid)
		if errors.Is(err, domain.ErrSessionNotFound) {
			mw.ClearSessionCookie(c)
			mw.redirectToLogin(c)
			return
		}
		if err != nil {
			respondPending(c)
			return
		}
		if !s.Authenticated() {
			mw.ClearSessionCookie(c)
			mw.redirectToLogin(c)
			return
		}

		if s.ProfilePending() {
			s, err = mw.mgr.EnsureProfile(c.Request.Context(), sid)
			if err != nil || s.ProfilePending() {
				// The token is intact; only the profile is missing. Keep the
				// session and ask the browser to retry.
				respondPending(c)
				return
			}
		}

		c.Set(ctxSessionKey, s)
		c.Set(ctxUserKey, s.User)
		c.Next()
	}
}

// RequireRoles is the allow-list form of the authenticated guard. A resolved
// user whose role is not in the list is steered to their own home, never to
// /login: they are authenticated, just in the wrong area.
func (mw *SessionMW) RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			// RequireSession did not run first; treat as unauthenticated.
			mw.redirectToLogin(c)
			return
		}
		if len(allowed) > 0 && !allowed[user.Role] {
			redirectHome(c, user.Role)
			return
		}
		c.Next()
	}
}

// RequireArea enforces the consolidated area policy. Denial is a routing
// decision, not an error: the user is redirected to their own area silently.
func (mw *SessionMW) RequireArea(policy domain.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			mw.redirectToLogin(c)
			return
		}
		ok, err := policy.Allowed(user.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			return
		}
		if !ok {
			redirectHome(c, user.Role)
			return
		}
		c.Next()
	}
}

// GuestOnly wraps pages meant for unauthenticated visitors. It redirects only
// when the profile is already resolved and never fetches it: guest pages must
// not block on the backend, so an authenticated-but-unresolved session still
// sees the guest page.
func (mw *SessionMW) GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := mw.SessionID(c)
		if !ok {
			c.Next()
			return
		}
		s, err := mw.mgr.Get(c.Request.Context(), sid)
		if err == nil && s.Authenticated() && s.User != nil {
			redirectHome(c, s.User.Role)
			return
		}
		c.Next()
	}
}

func (mw *SessionMW) redirectToLogin(c *gin.Context) {
	target := "/login"
	if from := c.Request.URL.RequestURI(); from != "" && from != "/login" {
		target += "?from=" + url.QueryEscape(from)
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

func redirectHome(c *gin.Context, role domain.Role) {
	c.Redirect(http.StatusSeeOther, role.HomePath())
	c.Abort()
}

// respondPending renders the loading placeholder: an auto-refreshing page for
// browsers, 202 with a pending marker for API consumers.
func respondPending(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Header("Retry-After", "1")
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(`<!DOCTYPE html><html><head><meta http-equiv="refresh" content="1"><title>Loading</title></head><body><p>Loading your session...</p></body></html>`))
	} else {
		c.Header("Retry-After", "1")
		c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
	}
	c.Abort()
}

// SafeReturnPath validates the attached-location handoff target from the
// login form. Only site-local paths are accepted; anything else falls back to
// the empty string and the caller uses the role home.
func SafeReturnPath(from string) string {
	if from == "" {
		return ""
	}
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return ""
	}
	if strings.ContainsAny(from, "\\\r\n") {
		return ""
	}
	return from
}
