// Package memory provides an in-memory storage.KV for tests and
// ephemeral deployments. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/mkale/dishpoll/internal/storage"
)

// Ensure KV implements storage.KV.
var _ storage.KV = (*KV)(nil)

// KV is a mutex-guarded map. Safe for concurrent use.
type KV struct {
	mu    sync.RWMutex
	items map[string]string
}

// New returns an empty in-memory KV.
func New() *KV {
	return &KV{items: make(map[string]string)}
}

// Get returns the value stored under key.
func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	value, ok := k.items[key]
	return value, ok, nil
}

// Set stores value under key, overwriting any previous value.
func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.items[key] = value
	return nil
}

// Delete removes key if present.
func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.items, key)
	return nil
}

// Close is a no-op for the in-memory backend.
func (k *KV) Close() error {
	return nil
}
