package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionCache tracks issued session tokens in Redis by jti so that signout
// can revoke them before expiry.
type SessionCache struct {
	Client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{Client: client}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

// Store records a live session until the token's natural expiry.
func (c *SessionCache) Store(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := c.Client.Set(ctx, sessionKey(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// IsLive reports whether the session has not been revoked.
func (c *SessionCache) IsLive(ctx context.Context, jti string) (bool, error) {
	_, err := c.Client.Get(ctx, sessionKey(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke drops the session, invalidating the token immediately.
func (c *SessionCache) Revoke(ctx context.Context, jti string) error {
	return c.Client.Del(ctx, sessionKey(jti)).Err()
}
