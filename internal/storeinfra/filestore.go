package storeinfra

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors surfaced by the file store. Both are wrapped with the
// underlying cause; match with errors.Is.
var (
	ErrValueNotSerializable = errors.New("cache value is not serializable")
	ErrPersistFailed        = errors.New("cache persist failed")
)

// Config holds the configuration for the file-backed store.
type Config struct {
	// Location is the backing file path.
	Location string

	// MaxAge is the entry lifetime measured from creation. Zero disables
	// expiry.
	MaxAge time.Duration

	// MaxSize bounds the persisted entry count. Zero means unbounded.
	MaxSize int

	// ForceUpdate treats every entry as a fresh write target regardless
	// of age.
	ForceUpdate bool

	// Clock overrides the time source. Nil uses the wall clock.
	Clock Clock
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Location == "" {
		return &ConfigError{Field: "Location", Message: "cannot be empty"}
	}
	if c.MaxAge < 0 {
		return &ConfigError{Field: "MaxAge", Message: "must be non-negative"}
	}
	if c.MaxSize < 0 {
		return &ConfigError{Field: "MaxSize", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// FileStore is an insertion-ordered mapping from call keys to entries,
// backed by a single JSON file. Expiry is evaluated lazily on reads;
// both expiry and the size bound are enforced against durable storage
// only when Persist runs, so the in-memory view may transiently exceed
// MaxSize and carry expired entries.
//
// The store assumes a single logical owner. It takes no locks, and two
// owners sharing a backing file resolve to last-writer-wins.
type FileStore struct {
	location    string
	maxAge      time.Duration
	maxSize     int
	forceUpdate bool
	clock       Clock

	entries map[string]*Entry
	order   []string
}

// Load constructs a store from the durable state at cfg.Location. A
// missing, unreadable, or corrupt backing file yields an empty store;
// a cold cache is not an error. The only failure mode is invalid
// configuration.
func Load(cfg Config) (*FileStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}

	s := &FileStore{
		location:    cfg.Location,
		maxAge:      cfg.MaxAge,
		maxSize:     cfg.MaxSize,
		forceUpdate: cfg.ForceUpdate,
		clock:       clock,
		entries:     make(map[string]*Entry),
	}
	s.readFile()
	return s, nil
}

// readFile loads the backing file best-effort. Anything unreadable or
// undecodable leaves the store cold.
func (s *FileStore) readFile() {
	data, err := os.ReadFile(s.location)
	if err != nil {
		return
	}

	var stored []Entry
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}

	for i := range stored {
		e := stored[i]
		if e.Key == "" {
			continue
		}
		if _, exists := s.entries[e.Key]; exists {
			continue
		}
		s.entries[e.Key] = &e
		s.order = append(s.order, e.Key)
	}
}

// Get returns the stored value for key. Expired entries read as misses
// but are not removed; they stay in memory until the next Persist.
func (s *FileStore) Get(key string) (json.RawMessage, bool) {
	e, ok := s.entries[key]
	if !ok || e.Expired(s.clock.Now(), s.maxAge) {
		return nil, false
	}
	return e.Value, true
}

// Put records value under key with a fresh creation time when the store
// forces updates, the key is absent, or the existing entry has expired.
// A live entry is otherwise left untouched: a Put inside the entry's
// valid window never silently refreshes its timestamp.
//
// The value is marshaled up front so an unserializable value is rejected
// at this boundary without mutating the store.
func (s *FileStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValueNotSerializable, err)
	}

	now := s.clock.Now()

	if existing, ok := s.entries[key]; ok {
		if !s.forceUpdate && !existing.Expired(now, s.maxAge) {
			return nil
		}
		// Overwrite in place: the entry keeps its insertion-order slot.
		existing.Value = raw
		existing.CreatedAt = now
		return nil
	}

	s.entries[key] = NewEntry(key, raw, now)
	s.order = append(s.order, key)
	return nil
}

// Persist writes the surviving entries to the backing location. Expired
// entries are dropped, and when MaxSize is set the oldest-created
// survivors are evicted until the count fits, ties broken by insertion
// order. Survivors are serialized in insertion order.
//
// The file is written through a temp file and a rename. On any failure
// the in-memory state is unchanged so Persist can simply be retried; on
// success the in-memory state matches what was written.
func (s *FileStore) Persist() error {
	now := s.clock.Now()

	survivors := make([]*Entry, 0, len(s.order))
	for _, key := range s.order {
		e := s.entries[key]
		if e.Expired(now, s.maxAge) {
			continue
		}
		survivors = append(survivors, e)
	}

	if s.maxSize > 0 && len(survivors) > s.maxSize {
		survivors = trimOldest(survivors, s.maxSize)
	}

	data, err := json.MarshalIndent(survivors, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValueNotSerializable, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.location), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	// Temp file + rename keeps a crashed write from clobbering the
	// previous cache file.
	tempPath := fmt.Sprintf("%s.%s.tmp", s.location, uuid.NewString())
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := os.Rename(tempPath, s.location); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	entries := make(map[string]*Entry, len(survivors))
	order := make([]string, 0, len(survivors))
	for _, e := range survivors {
		entries[e.Key] = e
		order = append(order, e.Key)
	}
	s.entries = entries
	s.order = order
	return nil
}

// trimOldest drops the oldest-created entries until max remain. The sort
// is stable over insertion order, so equal timestamps evict the earliest
// inserted first and the result is deterministic. The returned slice
// preserves the original insertion order of the survivors.
func trimOldest(survivors []*Entry, max int) []*Entry {
	byAge := make([]*Entry, len(survivors))
	copy(byAge, survivors)
	sort.SliceStable(byAge, func(i, j int) bool {
		return byAge[i].CreatedAt.Before(byAge[j].CreatedAt)
	})

	dropped := make(map[string]struct{}, len(survivors)-max)
	for _, e := range byAge[:len(survivors)-max] {
		dropped[e.Key] = struct{}{}
	}

	kept := make([]*Entry, 0, max)
	for _, e := range survivors {
		if _, drop := dropped[e.Key]; drop {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Len reports the in-memory entry count, expired entries included.
func (s *FileStore) Len() int {
	return len(s.entries)
}

// Keys returns the keys in insertion order.
func (s *FileStore) Keys() []string {
	return append([]string(nil), s.order...)
}

// Location returns the backing file path.
func (s *FileStore) Location() string {
	return s.location
}
