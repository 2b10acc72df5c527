// Package cache memoizes calculator evaluations. Entries are opaque bytes
// keyed by calculator name and canonical query.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Supported backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Cache stores evaluation payloads. A miss is reported as ok == false with a
// nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Options selects and sizes a backend.
type Options struct {
	Backend    string
	Addr       string
	Password   string
	DB         int
	MaxEntries int
	Prefix     string
}

// New builds the cache described by opts. An empty backend means memory.
func New(opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(opts.MaxEntries), nil
	case BackendRedis:
		if opts.Addr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedis(opts), nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", opts.Backend)
	}
}

// Key builds the cache key for a calculator evaluation.
func Key(calculator, canonicalQuery string) string {
	return "eval:" + calculator + "?" + canonicalQuery
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }
