package di

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-memoize/cache"
	"github.com/goliatone/go-memoize/memoize"
)

// Defaults carries the store policy every component built by a Container
// inherits unless overridden at the call site.
type Defaults struct {
	// MaxAge is the entry lifetime applied to stores and memoizers.
	// Zero means entries never expire.
	MaxAge time.Duration

	// MaxSize bounds the persisted entry count per cache file. Zero
	// means unbounded.
	MaxSize int

	// ForceUpdate makes every write overwrite regardless of entry age.
	ForceUpdate bool
}

// Container provides dependency injection for memoization components.
// It manages a shared key encoder and logger, and provides factory
// methods for file stores and memoizers that inherit the container's
// policy defaults.
type Container struct {
	defaults   Defaults
	keyEncoder cache.KeyEncoder
	logger     zerolog.Logger
}

// NewContainer creates a DI container with the provided policy defaults
// and logger. Key advisories from the shared encoder are routed to the
// logger.
func NewContainer(defaults Defaults, logger zerolog.Logger) (*Container, error) {
	// Reuse the store config validation so bad defaults surface here
	// rather than on first use. Location is per-store, so a placeholder
	// stands in for it.
	probe := cache.Config{
		Location: "defaults",
		MaxAge:   defaults.MaxAge,
		MaxSize:  defaults.MaxSize,
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	return &Container{
		defaults:   defaults,
		keyEncoder: cache.NewDefaultKeyEncoder(memoize.LogObserver(logger)),
		logger:     logger,
	}, nil
}

// NewContainerWithDefaults creates a DI container with zero-value policy
// (no expiry, no size bound) and a disabled logger. This is a
// convenience constructor for typical use cases where custom
// configuration is not required.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(Defaults{}, zerolog.Nop())
}

// KeyEncoder returns the shared key encoder instance. This allows access
// to the encoder for custom caching implementations.
func (c *Container) KeyEncoder() cache.KeyEncoder {
	return c.keyEncoder
}

// Defaults returns a copy of the policy defaults used by this container.
// This is useful for debugging and monitoring purposes.
func (c *Container) Defaults() Defaults {
	return c.defaults
}

// Logger returns the container's logger.
func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// FileStore opens a file-backed store at the given location using the
// container's policy defaults.
func (c *Container) FileStore(location string) (cache.Store, error) {
	return cache.NewFileStore(cache.Config{
		Location:    location,
		MaxAge:      c.defaults.MaxAge,
		MaxSize:     c.defaults.MaxSize,
		ForceUpdate: c.defaults.ForceUpdate,
	})
}

// Memoizer builds a memoizer for the given cache folder and app name,
// wired to the container's encoder, logger, and policy defaults.
func (c *Container) Memoizer(cacheFolder, appName string) (*memoize.Memoizer, error) {
	return memoize.New(memoize.Config{
		CacheFolder: cacheFolder,
		AppName:     appName,
		MaxAge:      c.defaults.MaxAge,
		MaxSize:     c.defaults.MaxSize,
		ForceUpdate: c.defaults.ForceUpdate,
		Logger:      c.logger,
		Encoder:     c.keyEncoder,
	})
}
