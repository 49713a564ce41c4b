package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-memoize/internal/storeinfra"
)

// Config exposes store configuration options for consumers of the cache
// package.
type Config struct {
	// Location is the backing file path. It is owned by the caller;
	// folder and file-name resolution live with the collaborator that
	// constructs the store (see the memoize package).
	Location string

	// MaxAge is how long an entry stays servable after creation. Entries
	// older than MaxAge read as misses and are dropped at persist time.
	// Zero means entries never expire.
	MaxAge time.Duration

	// MaxSize bounds the number of entries written to the backing
	// location. The bound is enforced only at persist time, evicting the
	// oldest-created entries first. Zero means unbounded.
	MaxSize int

	// ForceUpdate makes every Put overwrite, refreshing value and
	// creation time even for live entries.
	ForceUpdate bool
}

// DefaultConfig returns a Config populated with sensible defaults for a
// per-function cache file. Location must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		MaxAge:  0,
		MaxSize: 0,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Location, validation.Required),
		validation.Field(&c.MaxAge, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxSize, validation.Min(0)),
	)
}

func (c Config) toInternal() storeinfra.Config {
	return storeinfra.Config{
		Location:    c.Location,
		MaxAge:      c.MaxAge,
		MaxSize:     c.MaxSize,
		ForceUpdate: c.ForceUpdate,
	}
}
