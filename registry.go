package ectotx

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Registry is a registry of named sagas shared across the process.
//
// Saga construction is often dynamic, and callers that only hold a name
// (from configuration, a queue message, or a stored reference) need a way to
// recover the saga value. The registry is the one concurrency-safe piece of
// the library: registration may happen from init paths while other
// goroutines resolve names.
type Registry struct {
	sagas *xsync.MapOf[string, *Saga]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sagas: xsync.NewMapOf[string, *Saga]()}
}

// Register adds a saga under its name.
func (r *Registry) Register(saga *Saga) error {
	if _, loaded := r.sagas.LoadOrStore(saga.Name(), saga); loaded {
		return DuplicateError(saga.Name())
	}
	return nil
}

// Get retrieves a saga by name.
func (r *Registry) Get(name string) (*Saga, error) {
	saga, ok := r.sagas.Load(name)
	if !ok {
		return nil, NotFoundError(name)
	}
	return saga, nil
}
