package storeinfra

import (
	"encoding/json"
	"time"
)

// Entry is a single memoized record: the encoded call key, the stored
// payload, and the moment the payload was computed. Age for expiry and
// eviction purposes is always measured from CreatedAt, never from last
// access.
type Entry struct {
	// Key is the encoded call key, unique within a store.
	Key string `json:"key"`

	// Value is the memoized payload, restricted to JSON-representable
	// forms so it round-trips through the backing file.
	Value json.RawMessage `json:"value"`

	// CreatedAt is set once when the entry is first written and is
	// replaced only when the entry is overwritten wholesale (expired,
	// forced, or freshly computed). A cache hit never updates it.
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry creates an entry stamped with the given creation time.
func NewEntry(key string, value json.RawMessage, now time.Time) *Entry {
	return &Entry{Key: key, Value: value, CreatedAt: now}
}

// Age returns how long ago the entry was created.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// Expired reports whether the entry has outlived maxAge. A maxAge of
// zero disables expiry.
func (e *Entry) Expired(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return e.Age(now) > maxAge
}
