package settings

import "sync"

var (
	instance *Store
	once     sync.Once
)

// Init constructs the process-wide store on its first call, applying the
// given options. Every later call, from any goroutine, ignores its options
// and returns the already-constructed store, so exactly one store exists for
// the lifetime of the process. Call Init early in startup if the store needs
// a non-default source or an observer.
func Init(opts ...Option) *Store {
	once.Do(func() {
		instance = newStore(opts...)
	})
	return instance
}

// Instance returns the process-wide store, constructing it with default
// options if Init has not run yet. Concurrent first callers observe exactly
// one construction and an identical handle.
func Instance() *Store {
	return Init()
}
