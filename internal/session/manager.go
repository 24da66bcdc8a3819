// Package session owns the gateway-side session state: the durable Redis
// record, the signed browser cookie, and the manager that is the only writer
// of either.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// Manager implements domain.SessionManager. It is constructed and injected
// explicitly; there is no package-level instance. Mutations on one session
// are serialized through a per-session entry carrying a generation counter,
// so a response belonging to a superseded request is discarded whole and two
// responses can never be mixed field by field.
type Manager struct {
	repo    domain.SessionRepository
	gateway domain.AuthGateway

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu        sync.Mutex
	latest    uint64
	fetchOnce sync.Mutex
}

// next issues a generation ticket and makes it the newest one.
func (e *entry) next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latest++
	return e.latest
}

// NewManager creates the session manager.
func NewManager(repo domain.SessionRepository, gateway domain.AuthGateway) *Manager {
	return &Manager{
		repo:    repo,
		gateway: gateway,
		entries: make(map[string]*entry),
	}
}

func (m *Manager) entry(sessionID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sessionID]
	if !ok {
		e = &entry{}
		m.entries[sessionID] = e
	}
	return e
}

func (m *Manager) dropEntry(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
}

// Login implements domain.SessionManager. Token and profile are taken from
// the same backend response and persisted in one write; a failed login leaves
// no session behind.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	result, err := m.gateway.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return m.create(ctx, result)
}

// Register implements domain.SessionManager with the same contract as Login.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	result, err := m.gateway.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return m.create(ctx, result)
}

func (m *Manager) create(ctx context.Context, result *domain.AuthResult) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      result.User,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout implements domain.SessionManager. The local record is cleared first
// and unconditionally; the backend notification is best-effort. A backend
// failure never leaves the browser logged in.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	e := m.entry(sessionID)
	e.next() // invalidate any in-flight refresh for this session

	var token string
	if session, err := m.repo.Find(ctx, sessionID); err == nil {
		token = session.Token
	}

	if err := m.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	m.dropEntry(sessionID)

	if token != "" {
		if err := m.gateway.Logout(ctx, token); err != nil {
			log.Printf("LOGOUT_UPSTREAM_FAILED: session=%s error=%v", sessionID, err)
		}
	}
	return nil
}

// RefreshProfile implements domain.SessionManager. It replaces User in place
// from GET /auth/me. On failure the session is returned untouched together
// with the error: a transient profile fetch failure must not cost the user
// their token.
func (m *Manager) RefreshProfile(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := m.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	e := m.entry(sessionID)
	g := e.next()

	user, err := m.gateway.CurrentUser(ctx, session.Token)
	if err != nil {
		log.Printf("PROFILE_REFRESH_FAILED: session=%s error=%v", sessionID, err)
		return session, err
	}

	return m.commitProfile(ctx, e, g, sessionID, user)
}

// commitProfile applies a fetched profile only if the ticket is still the
// newest and the session still exists. Logged-out or superseded sessions
// silently drop the response.
func (m *Manager) commitProfile(ctx context.Context, e *entry, g uint64, sessionID string, user *domain.User) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g != e.latest {
		return nil, domain.ErrStaleResponse
	}

	session, err := m.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.User = user
	session.UpdatedAt = time.Now()
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EnsureProfile implements domain.SessionManager. Concurrent callers in the
// same pending window share one fetch; a session whose profile is already
// resolved is returned as-is without touching the backend.
func (m *Manager) EnsureProfile(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := m.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.ProfilePending() {
		return session, nil
	}

	e := m.entry(sessionID)
	e.fetchOnce.Lock()
	defer e.fetchOnce.Unlock()

	// Re-check under the fetch lock: another caller may have resolved it.
	session, err = m.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.ProfilePending() {
		return session, nil
	}
	return m.RefreshProfile(ctx, sessionID)
}

// Get implements domain.SessionManager.
func (m *Manager) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.repo.Find(ctx, sessionID)
}
