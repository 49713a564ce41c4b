package memoize

import (
	"path/filepath"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-memoize/cache"
)

// Memoizer wraps functions with persistent memoization. Each wrapped
// function gets its own file-backed store under the resolved cache
// folder; stores are created lazily on first call and shared between
// wrappers that resolve to the same file.
type Memoizer struct {
	cfg     Config
	folder  string
	encoder cache.KeyEncoder
	logger  zerolog.Logger

	// stores maps backing file path to its open store.
	stores *xsync.MapOf[string, cache.Store]
}

// New creates a Memoizer from cfg, resolving the cache folder up front
// so misconfiguration surfaces at construction rather than on the first
// memoized call.
func New(cfg Config) (*Memoizer, error) {
	folder, err := resolveCacheFolder(cfg.CacheFolder, cfg.AppName, cfg.Logger)
	if err != nil {
		return nil, err
	}

	encoder := cfg.Encoder
	if encoder == nil {
		observer := cfg.Observer
		if observer == nil {
			observer = LogObserver(cfg.Logger)
		}
		encoder = cache.NewDefaultKeyEncoder(observer)
	}

	return &Memoizer{
		cfg:     cfg,
		folder:  folder,
		encoder: encoder,
		logger:  cfg.Logger,
		stores:  xsync.NewMapOf[string, cache.Store](),
	}, nil
}

// LogObserver adapts a zerolog logger into a cache.Observer so key
// advisories show up as structured warnings.
func LogObserver(logger zerolog.Logger) cache.Observer {
	return func(a cache.Advisory) {
		logger.Warn().
			Str("kind", string(a.Kind)).
			Str("segment", a.Segment).
			Msg("argument looks identity-based; cache may not behave as expected")
	}
}

// Folder returns the resolved cache directory.
func (m *Memoizer) Folder() string {
	return m.folder
}

// storeFor returns the store backing the given function name, opening
// it on first use.
func (m *Memoizer) storeFor(name string) (cache.Store, error) {
	file := m.cfg.CacheFileName
	if file == "" {
		file = cacheFileName(name)
	}
	path := filepath.Join(m.folder, file)

	if s, ok := m.stores.Load(path); ok {
		return s, nil
	}

	s, err := cache.NewFileStore(cache.Config{
		Location:    path,
		MaxAge:      m.cfg.MaxAge,
		MaxSize:     m.cfg.MaxSize,
		ForceUpdate: m.cfg.ForceUpdate,
	})
	if err != nil {
		return nil, err
	}

	actual, _ := m.stores.LoadOrStore(path, s)
	return actual, nil
}

// FlushAll persists every open store. Wrapped calls already persist
// after each recorded result; this exists for callers that want an
// explicit save point, for example before process exit. The first
// failure is returned, remaining stores are still flushed.
func (m *Memoizer) FlushAll() error {
	var firstErr error
	m.stores.Range(func(path string, s cache.Store) bool {
		if err := s.Persist(); err != nil {
			m.logger.Warn().Err(err).Str("path", path).Msg("cache flush failed")
			if firstErr == nil {
				firstErr = err
			}
		}
		return true
	})
	return firstErr
}
