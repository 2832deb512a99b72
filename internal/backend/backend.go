// Package backend turns configuration into a concrete draft store.
package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/listwiz/internal/config"
	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/draft/natskv"
	"github.com/mark3labs/listwiz/internal/draft/redisstore"
	"github.com/mark3labs/listwiz/internal/draft/sqlitestore"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/state"
)

// Store is a draft store that may hold connections or files open.
type Store interface {
	draft.Store
	Close() error
}

type nopCloser struct {
	draft.Store
}

func (nopCloser) Close() error { return nil }

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	logger.Debug("Opening %s draft backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		return nopCloser{draft.NewMemoryStore()}, nil
	case config.BackendFile, "":
		return nopCloser{state.NewFileStore(filepath.Join(cfg.DataDir, "drafts"))}, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendRedis:
		s, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisTTL())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendNATS:
		s, err := natskv.OpenEmbedded(ctx, filepath.Join(cfg.DataDir, "nats"), cfg.NATSBucket, 0)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
