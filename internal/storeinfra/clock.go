package storeinfra

import "time"

// Clock provides time operations for the store. The default
// implementation uses time.Now; tests substitute a fake to exercise
// expiry and eviction deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
