package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps session tokens in Redis with a TTL, mapping each token
// to the owning user id.
type SessionStore struct {
	redis *RedisClient
}

// NewSessionStore creates a new Redis-backed session store
func NewSessionStore(redis *RedisClient) *SessionStore {
	return &SessionStore{redis: redis}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Put stores a token for a user with the given TTL
func (s *SessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if s == nil || s.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return s.redis.Set(ctx, sessionKey(token), userID, ttl)
}

// Lookup resolves a token to a user id. Returns "" when the token is
// unknown or expired.
func (s *SessionStore) Lookup(ctx context.Context, token string) (string, error) {
	if s == nil || s.redis == nil {
		return "", fmt.Errorf("redis client not available")
	}

	var userID string
	if err := s.redis.Get(ctx, sessionKey(token), &userID); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// Revoke removes a token
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if s == nil || s.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return s.redis.Delete(ctx, sessionKey(token))
}
