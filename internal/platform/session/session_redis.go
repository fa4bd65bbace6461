package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petstore_backend/internal/feature/account/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Each user has at most one active refresh token, keyed by email.
type SessionRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string, ttl time.Duration) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// sessionKey returns the Redis key for a user's session.
func (r *SessionRedis) sessionKey(email string) string {
	return fmt.Sprintf("%s:%s", r.prefix, email)
}

// Set stores the refresh token for a user, replacing any previous one.
// The TTL matches the refresh token lifetime, so stale sessions expire
// on their own.
func (r *SessionRedis) Set(ctx context.Context, email, refreshToken string) error {
	return r.client.Set(ctx, r.sessionKey(email), refreshToken, r.ttl).Err()
}

// Get retrieves the stored refresh token for a user.
func (r *SessionRedis) Get(ctx context.Context, email string) (string, error) {
	token, err := r.client.Get(ctx, r.sessionKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", usecase.ErrSessionNotFound
		}
		return "", err
	}
	return token, nil
}

// Del removes the stored refresh token for a user.
func (r *SessionRedis) Del(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.sessionKey(email)).Err()
}
