package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// RepositoryImpl implements domain.SessionRepository on Redis. The record is
// the durable token storage: it is what a page reload or gateway restart
// rehydrates from before the profile is re-fetched.
type RepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRepository creates a new session repository.
func NewRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &RepositoryImpl{
		client: client,
		prefix: "websess:",
		ttl:    ttl,
	}
}

// Save implements domain.SessionRepository. Saving rewrites the whole record
// and renews the TTL.
func (r *RepositoryImpl) Save(ctx context.Context, session *domain.Session) error {
	key := r.prefix + session.ID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// Find implements domain.SessionRepository.
func (r *RepositoryImpl) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := r.prefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete implements domain.SessionRepository.
func (r *RepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.prefix+sessionID).Err()
}
