package irq

import (
	"fmt"
	"sort"
)

type registryKey struct {
	kind  Kind
	index int
}

// Registry resolves a controller kind and instance index to a Handle. It is
// filled once by a RegistryBuilder during bring-up and never changes after,
// so lookups need no locking.
type Registry struct {
	handles map[registryKey]Handle
	ordered []Handle
	hooks   *HookableBase
}

// Lookup returns the handle of the controller registered under kind and
// index. It never creates a controller.
func (r *Registry) Lookup(kind Kind, index int) (Handle, bool) {
	h, ok := r.handles[registryKey{kind: kind, index: index}]
	return h, ok
}

// Get is like Lookup but reports a missing controller as ErrNotFound.
func (r *Registry) Get(kind Kind, index int) (Handle, error) {
	h, ok := r.Lookup(kind, index)
	if !ok {
		return Handle{}, fmt.Errorf("%s/%d: %w", kind, index, ErrNotFound)
	}

	return h, nil
}

// Handles returns every registered handle ordered by kind and then index.
func (r *Registry) Handles() []Handle {
	return append([]Handle(nil), r.ordered...)
}

// Len returns the number of registered controllers.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// InitAll initializes every controller once, in kind and index order. Core
// local controllers come first so that controllers chained onto them find
// their parents ready.
func (r *Registry) InitAll() {
	for _, h := range r.ordered {
		h.Init()
	}
}

// RegistryBuilder collects the controllers created during bring-up.
type RegistryBuilder struct {
	controllers []Controller
	hooks       []Hook
}

// MakeRegistryBuilder returns an empty RegistryBuilder.
func MakeRegistryBuilder() RegistryBuilder {
	return RegistryBuilder{}
}

// WithController adds a controller to the registry.
func (b RegistryBuilder) WithController(c Controller) RegistryBuilder {
	b.controllers = append(append([]Controller(nil), b.controllers...), c)
	return b
}

// WithHook adds a hook that observes every operation dispatched through the
// registry's handles and every delivery of hookable controllers.
func (b RegistryBuilder) WithHook(hook Hook) RegistryBuilder {
	b.hooks = append(append([]Hook(nil), b.hooks...), hook)
	return b
}

// Build freezes the collected controllers into a Registry.
func (b RegistryBuilder) Build() (*Registry, error) {
	r := &Registry{
		handles: make(map[registryKey]Handle),
		hooks:   &HookableBase{},
	}

	for _, hook := range b.hooks {
		r.hooks.AcceptHook(hook)
	}

	for _, c := range b.controllers {
		if c == nil {
			return nil, fmt.Errorf("nil controller in registry")
		}

		key := registryKey{kind: c.Kind(), index: c.Index()}
		if existing, found := r.handles[key]; found {
			return nil, fmt.Errorf("%s/%d (%s and %s): %w",
				key.kind, key.index, existing.Name(), c.Name(),
				ErrDuplicateController)
		}

		h := Handle{c: c, hooks: r.hooks}
		r.handles[key] = h
		r.ordered = append(r.ordered, h)

		if hookable, ok := c.(Hookable); ok {
			for _, hook := range b.hooks {
				hookable.AcceptHook(hook)
			}
		}
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		a, b := r.ordered[i], r.ordered[j]
		if a.Kind() != b.Kind() {
			return a.Kind() < b.Kind()
		}

		return a.Index() < b.Index()
	})

	return r, nil
}
