package collector

import "sync"

// Registry manages fetcher plugins
type Registry struct {
	mu       sync.RWMutex
	fetchers map[string]Fetcher
}

// NewRegistry creates a new fetcher registry
func NewRegistry() *Registry {
	return &Registry{
		fetchers: make(map[string]Fetcher),
	}
}

// Register adds a fetcher to the registry
func (r *Registry) Register(f Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[f.Name()] = f
}

// Get retrieves a fetcher by name
func (r *Registry) Get(name string) (Fetcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fetchers[name]
	return f, ok
}

// GetAll returns all registered fetchers
func (r *Registry) GetAll() []Fetcher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Fetcher, 0, len(r.fetchers))
	for _, f := range r.fetchers {
		result = append(result, f)
	}
	return result
}
