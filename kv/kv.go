// Package kv provides the durable key-value media the content store persists
// its snapshot into. Every backend stores opaque byte values under string keys.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is a process-local key-value store. Implementations must be safe for
// concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

// Open returns the backend named by kind, rooted at path. The memory backend
// ignores path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(path)
	case KindBolt:
		return OpenBolt(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", kind)
	}
}
