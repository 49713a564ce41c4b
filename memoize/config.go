package memoize

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-memoize/cache"
)

// Config controls how a Memoizer resolves storage and builds its
// per-function stores. The zero value is usable: results land under the
// user cache directory in a shared "memoize" folder, entries never
// expire, and nothing is logged.
type Config struct {
	// CacheFolder is an explicit directory for cache files. When set it
	// wins over AppName.
	CacheFolder string

	// AppName names the application the cache belongs to. Without an
	// explicit CacheFolder, files are kept under the user cache
	// directory for this app. Leaving both empty parks every anonymous
	// memoizer in one shared folder and risks collisions, so a warning
	// is logged.
	AppName string

	// CacheFileName overrides the per-function file name. When empty the
	// file is named after the wrapped function.
	CacheFileName string

	// MaxAge is how long a cached result stays servable. Zero means
	// results never expire.
	MaxAge time.Duration

	// MaxSize bounds the persisted entry count per cache file. Zero
	// means unbounded.
	MaxSize int

	// ForceUpdate makes every call recompute and overwrite the cached
	// result regardless of age.
	ForceUpdate bool

	// Logger receives structured hit/miss/persist events and advisory
	// warnings. The zero Logger discards everything.
	Logger zerolog.Logger

	// Encoder overrides the key encoder. Nil uses the default encoder
	// with advisories routed to Logger.
	Encoder cache.KeyEncoder

	// Observer overrides where key advisories go when the default
	// encoder is used. Nil routes them to Logger.
	Observer cache.Observer
}
