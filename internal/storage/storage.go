package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no storage medium is reachable.
// Consumers treat it as the empty/absent case, never as a hard failure.
var ErrUnavailable = errors.New("storage unavailable")

// KV is the contract for the persistent key-value medium backing
// review lists and the book cache.
//
// Get reports absence as ("", false, nil). Keys returns every stored key
// matching the prefix, sorted ascending; ranking determinism depends on
// that ordering, so every backend must honor it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
