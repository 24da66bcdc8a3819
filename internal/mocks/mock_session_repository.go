package mocks

import (
	"context"
	"sync"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// MockSessionRepository implements domain.SessionRepository with overridable
// functions backed by an in-memory map, so tests that only need storage get
// working behavior for free.
type MockSessionRepository struct {
	SaveFunc   func(ctx context.Context, session *domain.Session) error
	FindFunc   func(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteFunc func(ctx context.Context, sessionID string) error

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func (m *MockSessionRepository) store() map[string]*domain.Session {
	if m.sessions == nil {
		m.sessions = make(map[string]*domain.Session)
	}
	return m.sessions
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.store()[session.ID] = &copied
	return nil
}

func (m *MockSessionRepository) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store()[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store(), sessionID)
	return nil
}
