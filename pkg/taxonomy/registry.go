package taxonomy

import "sync"

// Registry holds the active taxonomy and supports hot reload (SIGHUP).
// Readers get an immutable *Taxonomy snapshot; Reload swaps it atomically.
type Registry struct {
	mu  sync.RWMutex
	dir string
	cur *Taxonomy
}

// NewRegistry creates a registry backed by dir. An empty dir means the
// embedded default tables.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Load reads the tables and makes them the active taxonomy.
func (r *Registry) Load() error {
	var (
		t   *Taxonomy
		err error
	)
	if r.dir == "" {
		t, err = Default()
	} else {
		t, err = Load(r.dir)
	}
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cur = t
	r.mu.Unlock()
	return nil
}

// Reload re-reads the tables from disk. On failure the previous taxonomy
// stays active.
func (r *Registry) Reload() error {
	return r.Load()
}

// Current returns the active taxonomy snapshot.
func (r *Registry) Current() *Taxonomy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cur
}
