// Package cache provides the persistent memoization store and key
// encoding used by the go-memoize decorators.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - Store: an ordered, file-backed mapping from call keys to memoized
//     values, with age-based expiry and persist-time size eviction
//   - KeyEncoder: builds stable cache keys from call arguments
//
// The package is designed to work with the function decorators in the
// memoize package, which resolve a storage location per wrapped function
// and drive the Store's get/put/persist cycle.
//
// # Basic Usage
//
// The simplest way to use the package directly:
//
//	encoder := cache.NewDefaultKeyEncoder(nil)
//	key := encoder.EncodeCall([]any{"user-123", 25}, nil)
//
//	store, err := cache.NewFileStore(cache.Config{
//		Location: "/var/cache/myapp/lookup_cache.json",
//		MaxAge:   time.Hour,
//		MaxSize:  500,
//	})
//	if err != nil {
//		return err
//	}
//
//	if v, ok, _ := cache.Lookup[Response](store, key); ok {
//		return v, nil
//	}
//	resp := expensiveCall()
//	if err := store.Put(key, resp); err != nil {
//		return err
//	}
//	return resp, store.Persist()
//
// # Key Encoding Strategy
//
// The default key encoder uses reflection to handle various Go types:
//
//   - Basic types: direct string representation
//   - Slices/arrays: recursive serialization of elements
//   - Maps: sorted key-value pairs for deterministic output
//   - Structs: exported fields with name:value pairs
//   - Function pointers and channels: %p formatting (stable only within
//     a process; see below)
//   - Complex types: JSON fallback with error handling
//
// Named arguments passed to EncodeCall are sorted by name, so their
// ordering at the call site never changes the key. Keys longer than
// MaxKeyLength are replaced with an xxhash digest.
//
// # Unstable Key Advisories
//
// A persistent cache is only as good as its keys. Arguments whose
// rendered form embeds a memory address (function pointers, channels,
// types that format as their address) produce keys that do not survive a
// process restart. The encoder flags these through the Observer callback
// supplied at construction; the advisory never raises an error and never
// changes the key. Callers remain responsible for passing arguments with
// stable textual representations.
//
// # Lifecycle and Durability
//
// A Store is constructed by loading whatever durable state exists at its
// backing location; a missing or corrupt file is treated as a cold
// cache. Mutations happen in memory. Persist is the single point where
// expiry and the size bound are enforced against durable storage: it
// drops entries older than MaxAge, evicts the oldest-created entries
// beyond MaxSize, and writes the rest atomically. A failed Persist
// leaves the in-memory view untouched so it can simply be retried.
//
// The Store assumes one writer per backing location. There is no
// internal locking and no multi-writer reconciliation; concurrent owners
// of one file resolve to last-writer-wins.
//
// # Error Handling
//
// Nothing in this package is fatal. Load-time storage problems degrade
// to an empty store; Put and Persist return ErrValueNotSerializable or
// ErrPersistFailed (match with errors.Is) and never leave a partial
// write behind.
//
// # See Also
//
// For wrapping functions with memoization, see the memoize package.
// For dependency injection setup, see the pkg/di package.
package cache
