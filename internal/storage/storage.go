package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Package storage provides the short-lived response cache behind the content tiers.

// Store caches response bodies for a bounded revalidation window.
type Store interface {
	Close() error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	CleanupInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

const defaultCleanupInterval = 10 * time.Minute

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	case "redis":
		if strings.TrimSpace(opts.RedisAddr) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                             { return nil }
func (noopStore) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (noopStore) Put(context.Context, string, []byte, time.Duration) error { return nil }
