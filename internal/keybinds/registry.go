// Package keybinds implements spec §9's priority-ordered key dispatch:
// overlay screens first, then in-edit context overrides, then list-screen
// globals, then fallthrough to text append — by layering a per-Context
// binding table over a Global fallback.
package keybinds

import "fmt"

// Binding is one (context, key) -> action mapping.
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry maps (Context, key) to Action, falling back to ContextGlobal
// when a context has no binding of its own.
type Registry struct {
	bindings map[Context]map[string]Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register adds a single (context, key) -> action mapping.
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers several keys for the same action.
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Match looks up key in context, falling back to ContextGlobal.
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}
	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}
	return "", false
}

// HasBinding reports whether key resolves to anything in context (or global).
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Validate reports the first duplicate-key binding found within any single
// context (duplicates across context+global are intentional overrides,
// not conflicts).
func (r *Registry) Validate() error {
	for context, contextBindings := range r.bindings {
		seen := map[string]bool{}
		for key := range contextBindings {
			if seen[key] {
				return fmt.Errorf("duplicate binding for key %q in context %q", key, context)
			}
			seen[key] = true
		}
	}
	return nil
}
