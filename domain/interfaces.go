package domain

import "context"

// AuthGateway issues authentication calls against the external backend and
// translates its responses into domain values.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset ResetPassword) error
	ChangePassword(ctx context.Context, token string, change ChangePassword) error
}

// CatalogGateway proxies read-only marketplace data.
type CatalogGateway interface {
	Products(ctx context.Context, filters ProductFilters) (*ProductPage, error)
	Product(ctx context.Context, slug string) (*Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Category(ctx context.Context, slug string) (*Category, error)
	CategoryProducts(ctx context.Context, categoryID uint, filters ProductFilters) (*ProductPage, error)
}

// SessionRepository is the durable session storage. A record outlives gateway
// restarts and page reloads; that is what lets Authenticated() be answered
// before the profile has been re-fetched.
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Find(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager owns all session mutation. Reads hand out snapshots; the
// four actions mirror the auth lifecycle.
type SessionManager interface {
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Register(ctx context.Context, reg Registration) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	RefreshProfile(ctx context.Context, sessionID string) (*Session, error)
	// EnsureProfile resolves a pending profile at most once per pending
	// transition; concurrent callers share the same fetch.
	EnsureProfile(ctx context.Context, sessionID string) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
}

// RoutePolicy answers whether a role may enter a path.
type RoutePolicy interface {
	Allowed(role Role, path, method string) (bool, error)
}
