// Package storage provides the ballot persistence layer: a small key-value
// abstraction plus the BallotStore built on top of it.
package storage

import "context"

// KV is the minimal key-value contract the ballot store needs.
// This abstraction allows swapping storage backends (in-memory, SQLite,
// or something remote) without changing the voting core.
//
// Implementations must make each operation atomic for a single key: a Set
// either stores the full value or fails leaving the prior value in place.
// No operation spans multiple keys, and implementations must be safe for
// concurrent use across distinct keys.
type KV interface {
	// Get returns the value stored under key, and whether it exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
