// Package redisstore keeps draft snapshots in Redis with an expiry, so an
// abandoned draft disappears on its own.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is applied when Options.TTL is zero.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "listwiz:draft:"

// Store implements draft.Store on a Redis client.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	owned  bool
}

var _ draft.Store = (*Store)(nil)

// New wraps client. Every Put refreshes the key's TTL.
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Dial connects to addr and checks the server answers PING.
func Dial(ctx context.Context, addr string, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	s := New(client, ttl)
	s.owned = true
	return s, nil
}

// Get returns the stored payload for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, draftKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, draft.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Put stores value under key and resets its expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, draftKey(key), value, s.ttl).Err()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, draftKey(key)).Err()
}

// Close closes the client if Dial created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func draftKey(key string) string {
	return keyPrefix + key
}
