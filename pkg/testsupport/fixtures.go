package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// SeedEntry is the shape of one record in a seeded cache file. It
// mirrors the backing store format: key, JSON payload, creation time.
type SeedEntry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// SeedCacheFile writes entries to path in the backing store format so
// tests can exercise load behavior against pre-existing durable state.
func SeedCacheFile(t *testing.T, path string, entries []SeedEntry) {
	t.Helper()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal seed entries for %s: %v", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create cache directory for %s: %v", path, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to seed cache file %s: %v", path, err)
	}
}

// ReadCacheFile decodes the cache file at path so tests can assert on
// what was actually persisted.
func ReadCacheFile(t *testing.T, path string) []SeedEntry {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cache file %s: %v", path, err)
	}

	var entries []SeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("failed to decode cache file %s: %v", path, err)
	}

	return entries
}

// CacheFileKeys returns just the keys persisted at path, in file order.
func CacheFileKeys(t *testing.T, path string) []string {
	t.Helper()

	entries := ReadCacheFile(t, path)
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
