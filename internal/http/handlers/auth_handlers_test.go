package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/middleware"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/mocks"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	handlers *AuthHandlers
	repo     *mocks.MockSessionRepository
	codec    *session.CookieCodec
	r        *gin.Engine
}

func newAuthFixture(gateway *mocks.MockAuthGateway) *authFixture {
	if gateway == nil {
		gateway = &mocks.MockAuthGateway{}
	}
	repo := &mocks.MockSessionRepository{}
	mgr := session.NewManager(repo, gateway)
	codec := session.NewCookieCodec("test-secret", "webgw-test", time.Hour)
	mw := middleware.NewSessionMW(mgr, codec, "websess", false)
	h := NewAuthHandlers(mgr, gateway, mw)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)
	r.POST("/forgot-password", h.ForgotPassword)
	account := r.Group("/account", mw.RequireSession())
	account.GET("/me", h.Me)
	account.POST("/change-password", h.ChangePassword)

	return &authFixture{handlers: h, repo: repo, codec: codec, r: r}
}

func (f *authFixture) postForm(target string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "websess", Value: cookie})
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func loginForm() url.Values {
	return url.Values{
		"email":    []string{"user@example.com"},
		"password": []string{"Secret123"},
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "websess" {
			return c
		}
	}
	t.Fatal("expected a websess cookie to be set")
	return nil
}

func TestLogin(t *testing.T) {
	customer := &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleCustomer}
	okGateway := &mocks.MockAuthGateway{
		LoginFunc: func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
			return &domain.AuthResult{Token: "tok-1", User: customer}, nil
		},
	}

	t.Run("success sets the cookie and points to the role home", func(t *testing.T) {
		f := newAuthFixture(okGateway)

		w := f.postForm("/login", loginForm(), "")

		require.Equal(t, http.StatusOK, w.Code)
		cookie := sessionCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.Contains(t, w.Body.String(), `"redirect":"/customer"`)

		// The record behind the cookie holds both token and user.
		sid, err := f.codec.Decode(cookie.Value)
		require.NoError(t, err)
		stored, err := f.repo.Find(context.Background(), sid)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", stored.Token)
		require.NotNil(t, stored.User)
	})

	t.Run("safe from target wins over the role home", func(t *testing.T) {
		f := newAuthFixture(okGateway)

		w := f.postForm("/login?from=%2Fproducts%3Fpage%3D2", loginForm(), "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redirect":"/products?page=2"`)
	})

	t.Run("absolute from target falls back to the role home", func(t *testing.T) {
		f := newAuthFixture(okGateway)

		w := f.postForm("/login?from=https%3A%2F%2Fevil.example.com", loginForm(), "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redirect":"/customer"`)
	})

	t.Run("invalid credentials yield 401 and no cookie", func(t *testing.T) {
		f := newAuthFixture(&mocks.MockAuthGateway{
			LoginFunc: func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
				return nil, domain.ErrInvalidCredentials
			},
		})

		w := f.postForm("/login", loginForm(), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing password fails binding", func(t *testing.T) {
		f := newAuthFixture(okGateway)

		w := f.postForm("/login", url.Values{"email": []string{"user@example.com"}}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("backend outage yields 502", func(t *testing.T) {
		f := newAuthFixture(&mocks.MockAuthGateway{
			LoginFunc: func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
				return nil, domain.ErrUpstreamUnavailable
			},
		})

		w := f.postForm("/login", loginForm(), "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestRegister(t *testing.T) {
	registerForm := func() url.Values {
		return url.Values{
			"name":                  []string{"New User"},
			"email":                 []string{"new@example.com"},
			"password":              []string{"Secret123"},
			"password_confirmation": []string{"Secret123"},
			"phone":                 []string{"0912345678"},
		}
	}

	t.Run("success signs the user in immediately", func(t *testing.T) {
		f := newAuthFixture(&mocks.MockAuthGateway{
			RegisterFunc: func(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
				return &domain.AuthResult{
					Token: "tok-2",
					User:  &domain.User{ID: 2, Email: reg.Email, Role: domain.RoleCustomer},
				}, nil
			},
		})

		w := f.postForm("/register", registerForm(), "")

		require.Equal(t, http.StatusOK, w.Code)
		sessionCookie(t, w)
		assert.Contains(t, w.Body.String(), `"redirect":"/customer"`)
	})

	t.Run("weak password is rejected before reaching the backend", func(t *testing.T) {
		called := false
		f := newAuthFixture(&mocks.MockAuthGateway{
			RegisterFunc: func(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
				called = true
				return nil, nil
			},
		})

		form := registerForm()
		form.Set("password", "alllowercase1")
		form.Set("password_confirmation", "alllowercase1")
		w := f.postForm("/register", form, "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "password")
		assert.False(t, called)
	})

	t.Run("mismatched confirmation is rejected locally", func(t *testing.T) {
		f := newAuthFixture(nil)

		form := registerForm()
		form.Set("password_confirmation", "Different123")
		w := f.postForm("/register", form, "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "password_confirmation")
	})

	t.Run("backend field errors pass through as 422", func(t *testing.T) {
		f := newAuthFixture(&mocks.MockAuthGateway{
			RegisterFunc: func(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
				fe := domain.FieldErrors{}
				fe.Add("email", "Email is already taken")
				return nil, fe
			},
		})

		w := f.postForm("/register", registerForm(), "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Email is already taken")
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears the local record even when the backend fails", func(t *testing.T) {
		f := newAuthFixture(&mocks.MockAuthGateway{
			LogoutFunc: func(ctx context.Context, token string) error {
				return domain.ErrUpstreamUnavailable
			},
		})
		require.NoError(t, f.repo.Save(context.Background(), &domain.Session{ID: "s1", Token: "tok-1"}))
		cookie, err := f.codec.Issue("s1")
		require.NoError(t, err)

		w := f.postForm("/logout", nil, cookie)

		assert.Equal(t, http.StatusOK, w.Code)
		_, err = f.repo.Find(context.Background(), "s1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		cleared := sessionCookie(t, w)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("storage failure still clears the cookie", func(t *testing.T) {
		f := newAuthFixture(nil)
		require.NoError(t, f.repo.Save(context.Background(), &domain.Session{ID: "s1", Token: "tok-1"}))
		f.repo.DeleteFunc = func(ctx context.Context, sessionID string) error {
			return errors.New("redis down")
		}
		cookie, err := f.codec.Issue("s1")
		require.NoError(t, err)

		w := f.postForm("/logout", nil, cookie)

		// The browser must not keep a cookie for a session it asked to end,
		// whatever happened to the durable record.
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		cleared := sessionCookie(t, w)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("without a cookie it still succeeds", func(t *testing.T) {
		f := newAuthFixture(nil)

		w := f.postForm("/logout", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMe(t *testing.T) {
	f := newAuthFixture(nil)
	require.NoError(t, f.repo.Save(context.Background(), &domain.Session{
		ID:    "s1",
		Token: "tok-1",
		User:  &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleCustomer},
	}))
	cookie, err := f.codec.Issue("s1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/account/me", nil)
	req.AddCookie(&http.Cookie{Name: "websess", Value: cookie})
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestChangePassword(t *testing.T) {
	var gotToken string
	f := newAuthFixture(&mocks.MockAuthGateway{
		ChangePasswordFunc: func(ctx context.Context, token string, change domain.ChangePassword) error {
			gotToken = token
			return nil
		},
	})
	require.NoError(t, f.repo.Save(context.Background(), &domain.Session{
		ID:    "s1",
		Token: "tok-1",
		User:  &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleCustomer},
	}))
	cookie, err := f.codec.Issue("s1")
	require.NoError(t, err)

	form := url.Values{
		"current_password":      []string{"OldSecret1"},
		"password":              []string{"NewSecret1"},
		"password_confirmation": []string{"NewSecret1"},
	}
	w := f.postForm("/account/change-password", form, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-1", gotToken)
}

func TestForgotPassword(t *testing.T) {
	var gotEmail string
	f := newAuthFixture(&mocks.MockAuthGateway{
		ForgotPasswordFunc: func(ctx context.Context, email string) error {
			gotEmail = email
			return nil
		},
	})

	w := f.postForm("/forgot-password", url.Values{"email": []string{"user@example.com"}}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", gotEmail)
}
