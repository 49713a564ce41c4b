package memoize

import (
	"github.com/goliatone/go-memoize/cache"
)

// Func wraps a one-argument function with persistent memoization. The
// cache file is named after fn unless the Memoizer's config overrides
// it.
func Func[A, R any](m *Memoizer, fn func(A) (R, error)) func(A) (R, error) {
	name := funcName(fn)
	return func(a A) (R, error) {
		return do(m, name, []any{a}, nil, func() (R, error) { return fn(a) })
	}
}

// Func2 wraps a two-argument function with persistent memoization.
func Func2[A, B, R any](m *Memoizer, fn func(A, B) (R, error)) func(A, B) (R, error) {
	name := funcName(fn)
	return func(a A, b B) (R, error) {
		return do(m, name, []any{a, b}, nil, func() (R, error) { return fn(a, b) })
	}
}

// Func3 wraps a three-argument function with persistent memoization.
func Func3[A, B, C, R any](m *Memoizer, fn func(A, B, C) (R, error)) func(A, B, C) (R, error) {
	name := funcName(fn)
	return func(a A, b B, c C) (R, error) {
		return do(m, name, []any{a, b, c}, nil, func() (R, error) { return fn(a, b, c) })
	}
}

// Call memoizes a single invocation under an explicit name, with
// positional and named arguments contributing to the key. It is the
// escape hatch for signatures the Func wrappers do not cover, and for
// callers that want option-style named arguments to hash independent of
// ordering.
func Call[R any](m *Memoizer, name string, args []any, kwargs map[string]any, fn func() (R, error)) (R, error) {
	return do(m, name, args, kwargs, fn)
}

// do is the shared read-through path: encode the key, consult the
// store, and on a miss compute, record, and persist.
//
// Errors from the wrapped function are never cached. Cache-side
// failures after a successful computation (unserializable result, an
// unwritable backing file) are logged and swallowed so caching problems
// do not break the call itself.
func do[R any](m *Memoizer, name string, args []any, kwargs map[string]any, fn func() (R, error)) (R, error) {
	var zero R

	store, err := m.storeFor(name)
	if err != nil {
		return zero, err
	}

	key := m.encoder.EncodeCall(args, kwargs)

	// ForceUpdate skips the lookup entirely: every call recomputes and
	// the store overwrites the entry with a fresh timestamp.
	if !m.cfg.ForceUpdate {
		value, ok, err := cache.Lookup[R](store, key)
		if err != nil {
			m.logger.Warn().Err(err).Str("function", name).Str("key", key).Msg("cached value unreadable, recomputing")
		}
		if ok && err == nil {
			m.logger.Debug().Str("function", name).Str("key", key).Msg("cache hit")
			return value, nil
		}
	}

	result, err := fn()
	if err != nil {
		return zero, err
	}

	if err := store.Put(key, result); err != nil {
		m.logger.Warn().Err(err).Str("function", name).Str("key", key).Msg("result not cacheable")
		return result, nil
	}
	if err := store.Persist(); err != nil {
		m.logger.Warn().Err(err).Str("function", name).Str("path", store.Location()).Msg("cache persist failed")
		return result, nil
	}

	m.logger.Debug().Str("function", name).Str("key", key).Msg("result cached")
	return result, nil
}
