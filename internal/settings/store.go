package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound indicates the requested setting key is absent from the store.
	ErrNotFound = errors.New("setting not found")
)

// LoadOutcome reports what a Load call did.
type LoadOutcome int

const (
	// OutcomeLoaded means this call executed the population step.
	OutcomeLoaded LoadOutcome = iota
	// OutcomeAlreadyLoaded means the store was populated before this call ran.
	OutcomeAlreadyLoaded
)

func (o LoadOutcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeAlreadyLoaded:
		return "already_loaded"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}

// Store holds the shared settings mapping and its loaded flag. All reads and
// writes go through Get, Update, Load, and Snapshot; the map itself is never
// handed out, so the locking discipline cannot be bypassed.
type Store struct {
	// loadMu serializes Load calls so the population step runs at most once,
	// while mu stays free for readers of already-published state.
	loadMu sync.Mutex

	mu     sync.RWMutex
	values map[string]string
	loaded bool

	source   Source
	observer Observer
}

// Option configures a Store during construction.
type Option func(*Store)

// WithSource replaces the default load source.
func WithSource(src Source) Option {
	return func(s *Store) {
		if src != nil {
			s.source = src
		}
	}
}

// WithObserver installs a callback invoked after loads and updates.
func WithObserver(obs Observer) Option {
	return func(s *Store) {
		s.observer = obs
	}
}

// newStore constructs an empty, unloaded store. Construction does no I/O and
// cannot fail; population happens on the first Load. Kept unexported so
// consumers can only reach a store through Instance.
func newStore(opts ...Option) *Store {
	s := &Store{
		values: make(map[string]string),
		source: Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the store from its source and marks it loaded. It is
// idempotent: once the store is loaded, Load reports OutcomeAlreadyLoaded
// without touching the mapping. Concurrent callers either block behind the
// in-flight load or observe the loaded state and return immediately; the
// population step itself executes at most once per successful load. A failed
// load leaves the store unloaded, so a later call may retry.
func (s *Store) Load(ctx context.Context) (LoadOutcome, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return OutcomeAlreadyLoaded, nil
	}

	if err := ctx.Err(); err != nil {
		return OutcomeLoaded, fmt.Errorf("load settings: %w", err)
	}

	values, err := s.source.Load(ctx)
	if err != nil {
		return OutcomeLoaded, fmt.Errorf("load settings: %w", err)
	}

	s.mu.Lock()
	for key, value := range values {
		s.values[key] = value
	}
	s.loaded = true
	s.mu.Unlock()

	s.notify(Event{Kind: EventLoaded})
	return OutcomeLoaded, nil
}

// Get returns the value for key, loading the store first if it has not been
// populated yet. An absent key yields ErrNotFound; that is a normal result,
// not a failure of the store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if !s.Loaded() {
		if _, err := s.Load(ctx); err != nil {
			return "", err
		}
	}

	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return value, nil
}

// Update inserts or overwrites the value for key. It works on loaded and
// unloaded stores alike and does not itself trigger a load. The write is
// immediately visible through every handle to this store.
func (s *Store) Update(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.notify(Event{Kind: EventUpdated, Key: key})
}

// Loaded reports whether the population step has completed. Once true it
// never reverts.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a defensive copy of the current mapping. It does not
// trigger a load; an unloaded store yields only explicitly updated keys.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

func (s *Store) notify(ev Event) {
	if s.observer != nil {
		s.observer(ev)
	}
}
