package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable marks a store transport failure (network, timeout, server).
var ErrUnavailable = errors.New("session store unavailable")

// ErrNotFound is returned by Get when the user has no stored refresh token.
var ErrNotFound = errors.New("refresh token not found")

// Store is the contract the engine consumes. RedisStore is the production
// implementation; tests may substitute doubles.
type Store interface {
	Put(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// RedisStore holds refresh-token slots in Redis, one key per user.
type RedisStore struct {
	redis     redis.UniversalClient
	prefix    string
	opTimeout time.Duration
}

// NewRedisStore creates a slot store backed by the given Redis client.
// prefix namespaces the keys; opTimeout bounds every round-trip.
func NewRedisStore(client redis.UniversalClient, prefix string, opTimeout time.Duration) *RedisStore {
	return &RedisStore{
		redis:     client,
		prefix:    prefix,
		opTimeout: opTimeout,
	}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + ":" + userID
}

func (s *RedisStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// Put overwrites the user's slot with the given token and TTL. Last writer
// wins; there is no conditional variant.
//
//	Performance: 1 Redis SET.
func (s *RedisStore) Put(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	if userID == "" || refreshToken == "" {
		return errors.New("session: missing user id or token value")
	}
	if ttl <= 0 {
		return errors.New("session: ttl must be positive")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.redis.Set(ctx, s.key(userID), refreshToken, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Get returns the stored token for the user, ErrNotFound when the slot is
// absent or expired.
//
//	Performance: 1 Redis GET.
func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	value, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Delete removes the user's slot. Deleting an absent slot succeeds.
//
//	Performance: 1 Redis DEL.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping reports point-in-time Redis availability and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
