package shoco

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultModel is the process-wide holder set at package init and
// atomically swappable by callers. Swapping is not synchronized with
// in-flight codec calls; callers must not swap the default while other
// goroutines are mid-call against it.
var defaultModel atomic.Pointer[Model]

// DefaultModel returns the current process-wide default model.
func DefaultModel() *Model {
	return defaultModel.Load()
}

// SetDefaultModel atomically replaces the process-wide default model and
// returns the previous one.
func SetDefaultModel(m *Model) *Model {
	return defaultModel.Swap(m)
}

// ModelRegistry is a bounded, named cache of trained models, for callers
// juggling more than one corpus (e.g. one model per locale) without
// keeping every trained Model resident forever. It is safe for concurrent
// use; eviction is least-recently-used.
type ModelRegistry struct {
	cache *lru.Cache[string, *Model]
}

// NewModelRegistry returns a ModelRegistry holding at most size models.
// size must be positive.
func NewModelRegistry(size int) (*ModelRegistry, error) {
	c, err := lru.New[string, *Model](size)
	if err != nil {
		return nil, fmt.Errorf("shoco: new model registry: %w", err)
	}
	return &ModelRegistry{cache: c}, nil
}

// Put registers m under name, evicting the least-recently-used entry if
// the registry is full.
func (r *ModelRegistry) Put(name string, m *Model) {
	r.cache.Add(name, m)
}

// Get returns the model registered under name, if any.
func (r *ModelRegistry) Get(name string) (*Model, bool) {
	return r.cache.Get(name)
}

// Remove evicts the model registered under name, if any.
func (r *ModelRegistry) Remove(name string) {
	r.cache.Remove(name)
}

// Len returns the number of models currently cached.
func (r *ModelRegistry) Len() int {
	return r.cache.Len()
}

// UseAsDefault looks up name and, if present, installs it as the
// process-wide default model via [SetDefaultModel].
func (r *ModelRegistry) UseAsDefault(name string) bool {
	m, ok := r.cache.Get(name)
	if !ok {
		return false
	}
	SetDefaultModel(m)
	return true
}
