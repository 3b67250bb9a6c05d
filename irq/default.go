package irq

import "sync"

var (
	defaultRegistryMu sync.Mutex
	defaultRegistry   *Registry
)

// SetDefaultRegistry publishes the registry built at bring-up as the
// process-wide one. It can be called only once.
func SetDefaultRegistry(r *Registry) error {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()

	if defaultRegistry != nil {
		return ErrAlreadySet
	}

	defaultRegistry = r

	return nil
}

// DefaultRegistry returns the process-wide registry, or nil before bring-up.
func DefaultRegistry() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()

	return defaultRegistry
}

// GetController looks up a controller in the process-wide registry.
func GetController(kind Kind, index int) (Handle, bool) {
	r := DefaultRegistry()
	if r == nil {
		return Handle{}, false
	}

	return r.Lookup(kind, index)
}

