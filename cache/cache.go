// Package cache provides the key-value store used for rate-limit counters, password-reset tokens,
// reply like markers and revoked session tokens. Redis is used when REDIS_URL is configured; the
// in-process Memory store backs development and tests.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the set of cache operations the application relies on.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it was stored.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Incr increments the counter at key and resets its expiry to window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Cache is the global cache instance
var Cache Store

// Connect opens the configured cache backend and stores it in Cache.
func Connect(ctx context.Context, redisURL string) error {
	if redisURL == "" {
		log.Warn().Msg("REDIS_URL not set, using in-process cache")
		Cache = NewMemory()
		return nil
	}

	store, err := OpenRedis(ctx, redisURL)
	if err != nil {
		return err
	}
	Cache = store
	log.Info().Msg("connected to redis")
	return nil
}

// RateLimitKey counts attempts of op from one client address.
func RateLimitKey(op, ip string) string {
	return "rate-limit:" + op + ":" + ip
}

func PasswordResetKey(token string) string {
	return "password-reset:" + token
}

func BlacklistKey(token string) string {
	return "blacklist:" + token
}

// LikeKey marks that userID liked replyID.
func LikeKey(userID, replyID uint) string {
	return fmt.Sprintf("like:%d:%d", userID, replyID)
}
