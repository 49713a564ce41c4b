// Package memoize provides persistent, function-level memoization
// decorators on top of the cache package.
//
// # Overview
//
// This package implements the decorator side of go-memoize: it wraps a
// deterministic function, derives a cache key from each call's
// arguments, and answers repeat calls from a file-backed store instead
// of re-executing the function. It is aimed at expensive deterministic
// operations, remote API calls being the canonical case, where
// re-invocation cost dominates and exact-match caching suffices.
//
// # Basic Usage
//
// Wrap a function and call the wrapper as usual:
//
//	m, err := memoize.New(memoize.Config{
//		AppName: "weatherapp",
//		MaxAge:  time.Hour,
//		MaxSize: 500,
//	})
//	if err != nil {
//		return err
//	}
//
//	cachedForecast := memoize.Func(m, fetchForecast)
//
//	f, err := cachedForecast("oslo") // first call hits the API
//	f, err = cachedForecast("oslo")  // answered from the cache file
//
// Func2 and Func3 cover higher arities; Call covers everything else and
// accepts named arguments whose ordering never affects the key:
//
//	cost, err := memoize.Call(m, "price_lookup",
//		[]any{region}, map[string]any{"tier": tier, "currency": cur},
//		func() (float64, error) { return priceAPI(region, tier, cur) })
//
// # Storage Resolution
//
// Each wrapped function gets its own cache file, named after the
// function, inside the resolved cache folder:
//
//   - Config.CacheFolder, when set, is used as-is
//   - otherwise the per-user cache directory namespaced by
//     Config.AppName
//   - otherwise a shared "memoize" folder, with a logged warning, since
//     anonymous caches from different programs can collide there
//
// # Caching Behavior
//
// The wrappers follow a read-through pattern:
//
//  1. Encode the arguments into a key
//  2. On a hit, decode and return the stored result
//  3. On a miss, invoke the wrapped function
//  4. Record and persist the result
//  5. Return the result to the caller
//
// Errors from the wrapped function are propagated unchanged and never
// cached. Cache-side failures after a successful computation, such as an
// unserializable result or an unwritable cache file, are logged and do
// not break the call.
//
// # Determinism Caveats
//
// The wrapped function is assumed deterministic; memoizing a
// non-deterministic function pins its first answer. Arguments must have
// stable, value-based representations: arguments that render to memory
// addresses trigger an advisory warning through the configured logger
// but are otherwise used as-is.
//
// # See Also
//
// For store configuration, key encoding, and durability semantics, see
// the cache package. For dependency injection setup, see pkg/di.
package memoize
