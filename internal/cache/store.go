// Package cache stores rendered output keyed by content fingerprint and
// output format.
package cache

import "context"

// Store is a compiled output cache.
type Store interface {
	// Get returns the cached bytes for fingerprint and format. The boolean
	// is false on a miss.
	Get(ctx context.Context, fingerprint, format string) ([]byte, bool, error)
	Put(ctx context.Context, fingerprint, format string, data []byte) error
	Close() error
}

// NoopStore never hits and discards writes.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopStore) Put(context.Context, string, string, []byte) error         { return nil }
func (NoopStore) Close() error                                              { return nil }

// Key builds the format key for a lookup. Raw (unnormalized) output is kept
// apart from normalized output of the same content.
func Key(format string, raw bool) string {
	if raw {
		return format + "+raw"
	}
	return format
}
