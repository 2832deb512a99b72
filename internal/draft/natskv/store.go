// Package natskv backs draft snapshots with a NATS JetStream KeyValue bucket.
package natskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/listwiz/internal/draft"
	inats "github.com/mark3labs/listwiz/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Store implements draft.Store on a KeyValue bucket.
type Store struct {
	kv       jetstream.KeyValue
	embedded *inats.Embedded
}

var _ draft.Store = (*Store)(nil)

// New wraps an existing bucket.
func New(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// OpenEmbedded starts an in-process server under storeDir and opens the
// draft bucket on it. Close releases the server.
func OpenEmbedded(ctx context.Context, storeDir, bucket string, ttl time.Duration) (*Store, error) {
	e, err := inats.StartEmbedded(storeDir)
	if err != nil {
		return nil, err
	}
	kv, err := inats.SetupDraftBucket(ctx, e.JS, bucket, ttl)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	return &Store{kv: kv, embedded: e}, nil
}

// Get returns the latest value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, draft.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value(), nil
}

// Put stores value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

// Delete places a delete marker for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Close shuts down the embedded server if this store started one.
func (s *Store) Close() error {
	if s.embedded == nil {
		return nil
	}
	return s.embedded.Close()
}
