package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praveshgrewal/UCMS/domain"
)

// LoginSessionRepositoryImpl implements domain.LoginSessionRepository
// using Redis. The context between requesting a login code and confirming
// it is short-lived by design; Redis TTL handles cleanup.
type LoginSessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewLoginSessionRepository creates a new login session repository
func NewLoginSessionRepository(client *redis.Client, ttl time.Duration) domain.LoginSessionRepository {
	return &LoginSessionRepositoryImpl{
		client: client,
		prefix: "login:",
		ttl:    ttl,
	}
}

// Create implements domain.LoginSessionRepository
func (r *LoginSessionRepositoryImpl) Create(ctx context.Context, session *domain.LoginSession) error {
	key := r.prefix + session.Token
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal login session: %w", err)
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// Find implements domain.LoginSessionRepository
func (r *LoginSessionRepositoryImpl) Find(ctx context.Context, token string) (*domain.LoginSession, error) {
	key := r.prefix + token
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrLoginSessionExpired
		}
		return nil, err
	}

	var session domain.LoginSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal login session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrLoginSessionExpired
	}

	return &session, nil
}

// Delete implements domain.LoginSessionRepository
func (r *LoginSessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.prefix+token).Err()
}
