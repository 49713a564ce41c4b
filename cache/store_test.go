package cache

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFileStore(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		if _, err := NewFileStore(Config{}); err == nil {
			t.Error("NewFileStore() with empty Location should fail")
		}
	})

	t.Run("read through lifecycle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weather_cache.json")

		store, err := NewFileStore(Config{Location: path, MaxAge: time.Hour})
		if err != nil {
			t.Fatalf("NewFileStore() error = %v", err)
		}

		type forecast struct {
			City string `json:"city"`
			Temp int    `json:"temp"`
		}

		key := "forecast::oslo"
		if _, ok := store.Get(key); ok {
			t.Fatal("cold store should miss")
		}

		if err := store.Put(key, forecast{City: "oslo", Temp: 4}); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := store.Persist(); err != nil {
			t.Fatalf("Persist() error = %v", err)
		}

		// A fresh store over the same location serves the durable state.
		reopened, err := NewFileStore(Config{Location: path, MaxAge: time.Hour})
		if err != nil {
			t.Fatalf("NewFileStore() reopen error = %v", err)
		}

		got, ok, err := Lookup[forecast](reopened, key)
		if err != nil || !ok {
			t.Fatalf("Lookup() = %v, %v, %v; want hit", got, ok, err)
		}
		if got.City != "oslo" || got.Temp != 4 {
			t.Errorf("Lookup() = %+v, want {oslo 4}", got)
		}
	})

	t.Run("unserializable value", func(t *testing.T) {
		store, err := NewFileStore(Config{Location: filepath.Join(t.TempDir(), "c.json")})
		if err != nil {
			t.Fatalf("NewFileStore() error = %v", err)
		}

		err = store.Put("bad", func() {})
		if !errors.Is(err, ErrValueNotSerializable) {
			t.Errorf("Put(func) error = %v, want ErrValueNotSerializable", err)
		}
	})
}

// stubStore lets Lookup be tested without touching the filesystem.
type stubStore struct {
	data map[string]json.RawMessage
}

func (s *stubStore) Get(key string) (json.RawMessage, bool) {
	raw, ok := s.data[key]
	return raw, ok
}

func (s *stubStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *stubStore) Persist() error { return nil }

func (s *stubStore) Len() int { return len(s.data) }

func (s *stubStore) Keys() []string { return nil }

func (s *stubStore) Location() string { return "stub" }

func TestLookup(t *testing.T) {
	store := &stubStore{data: map[string]json.RawMessage{
		"number": json.RawMessage(`42`),
		"broken": json.RawMessage(`{not json`),
	}}

	t.Run("hit decodes typed value", func(t *testing.T) {
		got, ok, err := Lookup[int](store, "number")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if !ok || got != 42 {
			t.Errorf("Lookup() = %d, %v; want 42, true", got, ok)
		}
	})

	t.Run("miss", func(t *testing.T) {
		_, ok, err := Lookup[int](store, "absent")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if ok {
			t.Error("Lookup(absent) = hit, want miss")
		}
	})

	t.Run("undecodable payload reports error", func(t *testing.T) {
		_, ok, err := Lookup[int](store, "broken")
		if err == nil {
			t.Error("Lookup(broken) error = nil, want decode error")
		}
		if ok {
			t.Error("Lookup(broken) = hit, want miss")
		}
	})
}
