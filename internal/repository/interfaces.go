package repository

import "context"

// KeySavedSessionSets is the key holding the canonical list of saved sets.
const KeySavedSessionSets = "savedSessionSets"

// KVStore is the key-value provider the session set store persists through.
// Only single-key atomicity is assumed; there are no transactions spanning
// several keys.
type KVStore interface {
	// Get returns the value for key. ok is false when no entry exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
