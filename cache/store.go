package cache

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-memoize/internal/storeinfra"
)

// KeyEncoder builds a cache key from the arguments of a memoized call.
// It is responsible for producing stable keys across calls and across
// process restarts: value-equal arguments must yield equal keys, and the
// ordering of named arguments must not affect the result.
type KeyEncoder interface {
	EncodeCall(args []any, kwargs map[string]any) string
}

// Store is a persistent, size- and age-bounded mapping from call keys to
// memoized values. Implementations keep entries ordered by insertion and
// enforce the size bound only when persisting, so the in-memory view may
// transiently exceed it.
//
// A Store assumes a single logical owner: no internal locking is
// provided, and two processes sharing one backing location resolve to
// last-writer-wins at Persist time.
type Store interface {
	// Get returns the stored value for key if it exists and has not
	// outlived the store's max age. Expired entries read as misses but
	// stay in memory until the next Persist decides their fate.
	Get(key string) (json.RawMessage, bool)

	// Put records value under key. Live entries are left untouched
	// unless the store was built with ForceUpdate; absent and expired
	// entries are written with a fresh creation time. Values must be
	// JSON-serializable.
	Put(key string, value any) error

	// Persist writes the surviving entries to the backing location,
	// dropping expired entries and evicting the oldest-created beyond
	// the size bound. On failure the in-memory state is unchanged so a
	// retry is safe.
	Persist() error

	// Len reports the in-memory entry count, expired entries included.
	Len() int

	// Keys returns the keys in insertion order.
	Keys() []string

	// Location returns the backing file path.
	Location() string
}

// Sentinel errors surfaced by Store implementations. Match with
// errors.Is; both wrap the underlying cause.
var (
	// ErrValueNotSerializable reports a value that cannot be represented
	// in the backing format. Surfaced from Put or Persist; nothing is
	// written when it occurs.
	ErrValueNotSerializable = storeinfra.ErrValueNotSerializable

	// ErrPersistFailed reports a backing location that could not be
	// written. The in-memory store is preserved unchanged.
	ErrPersistFailed = storeinfra.ErrPersistFailed
)

// NewFileStore constructs the default file-backed store from the given
// configuration, loading any durable state already present at the
// backing location. A missing or unreadable backing file is equivalent
// to a cold cache, not an error.
func NewFileStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return storeinfra.Load(cfg.toInternal())
}

// Lookup is a type-safe read helper over a Store. It decodes the stored
// payload into T. A decode failure is reported as an error alongside a
// miss so callers can choose to recompute.
func Lookup[T any](s Store, key string) (T, bool, error) {
	var zero T

	raw, ok := s.Get(key)
	if !ok {
		return zero, false, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, false, fmt.Errorf("decode cached value for %q: %w", key, err)
	}
	return value, true, nil
}
