package model

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/nestgraph/pkg/errors"
)

// MapRegistry is an in-memory Registry. It is safe for concurrent use.
type MapRegistry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewMapRegistry creates a registry holding the given models.
func NewMapRegistry(models ...*Model) (*MapRegistry, error) {
	r := &MapRegistry{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if err := r.Put(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Lookup returns a copy of the model registered under id.
func (r *MapRegistry) Lookup(id string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	if !ok {
		return nil, errors.UnknownModel(id)
	}
	return m.Clone(), nil
}

// Put validates m and registers it, replacing any model with the same ID.
func (r *MapRegistry) Put(m *Model) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidModel, "model cannot be nil")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ID] = m.Clone()
	return nil
}

// Remove unregisters id. Removing an unknown id is a no-op.
func (r *MapRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, id)
}

// Len returns the number of registered models.
func (r *MapRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// List returns copies of all models sorted by ID.
func (r *MapRegistry) List() []*Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Model, 0, len(r.models))
	for _, id := range slices.Sorted(maps.Keys(r.models)) {
		out = append(out, r.models[id].Clone())
	}
	return out
}

// Filter returns the models of one element type sorted by ID.
func (r *MapRegistry) Filter(elementType string) []*Model {
	return slices.DeleteFunc(r.List(), func(m *Model) bool { return m.ElementType != elementType })
}

var _ Registry = (*MapRegistry)(nil)
