package memoize

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveCacheFolder(t *testing.T) {
	t.Run("explicit folder wins", func(t *testing.T) {
		got, err := resolveCacheFolder("/var/cache/custom", "ignored", zerolog.Nop())
		if err != nil {
			t.Fatalf("resolveCacheFolder() error = %v", err)
		}
		if got != "/var/cache/custom" {
			t.Errorf("resolveCacheFolder() = %q, want explicit folder", got)
		}
	})

	t.Run("app name namespaces the user cache dir", func(t *testing.T) {
		got, err := resolveCacheFolder("", "weatherapp", zerolog.Nop())
		if err != nil {
			t.Fatalf("resolveCacheFolder() error = %v", err)
		}
		if filepath.Base(got) != "weatherapp" {
			t.Errorf("resolveCacheFolder() = %q, want a weatherapp directory", got)
		}
	})

	t.Run("anonymous falls back with a warning", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		got, err := resolveCacheFolder("", "", logger)
		if err != nil {
			t.Fatalf("resolveCacheFolder() error = %v", err)
		}
		if filepath.Base(got) != defaultFolderName {
			t.Errorf("resolveCacheFolder() = %q, want the shared %q directory", got, defaultFolderName)
		}
		if !strings.Contains(buf.String(), "not recommended") {
			t.Errorf("expected a collision warning, got log output %q", buf.String())
		}
	})
}

func TestCacheFileName(t *testing.T) {
	if got := cacheFileName("fetch_forecast"); got != "fetch_forecast_cache.json" {
		t.Errorf("cacheFileName() = %q, want fetch_forecast_cache.json", got)
	}
}

func sampleLookup(city string) (string, error) {
	return city, nil
}

func TestFuncName(t *testing.T) {
	t.Run("named function", func(t *testing.T) {
		if got := funcName(sampleLookup); got != "sample_lookup" {
			t.Errorf("funcName() = %q, want sample_lookup", got)
		}
	})

	t.Run("closure gets a derived name", func(t *testing.T) {
		fn := func(s string) (string, error) { return s, nil }
		got := funcName(fn)
		if got == "" || strings.ContainsAny(got, "./") {
			t.Errorf("funcName() = %q, want a non-empty filesystem-safe name", got)
		}
	})
}
