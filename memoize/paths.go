package memoize

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// defaultFolderName is the shared folder used when neither CacheFolder
// nor AppName is provided.
const defaultFolderName = "memoize"

// cacheFileSuffix is appended to the resolved function name to build the
// backing file name.
const cacheFileSuffix = "_cache.json"

// resolveCacheFolder picks the directory cache files live in. An
// explicit folder wins; otherwise the per-user cache directory is used,
// namespaced by app name when one is given. Anonymous memoization falls
// back to a folder shared by every anonymous caller, which invites
// collisions, so it is logged as a warning.
func resolveCacheFolder(folder, appName string, logger zerolog.Logger) (string, error) {
	if folder != "" {
		return folder, nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}

	if appName != "" {
		return filepath.Join(base, appName), nil
	}

	logger.Warn().Msg("memoizing without AppName or CacheFolder is not recommended; anonymous caches share one folder and may collide")
	return filepath.Join(base, defaultFolderName), nil
}

// cacheFileName derives the backing file name for a wrapped function.
func cacheFileName(funcName string) string {
	return funcName + cacheFileSuffix
}

// funcName resolves a short, filesystem-safe name for fn via the
// runtime. Method receivers and package paths are stripped and the
// remainder is snake_cased, so closures come out as something like
// "wrap_func_1" rather than a full import path.
func funcName(fn any) string {
	name := "func"
	if pc := reflect.ValueOf(fn).Pointer(); pc != 0 {
		if f := runtime.FuncForPC(pc); f != nil {
			name = f.Name()
		}
	}

	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}

	if snake := toSnake(name); snake != "" {
		return snake
	}
	return "func"
}
