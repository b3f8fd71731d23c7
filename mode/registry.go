package mode

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"go.envmask.dev/core/pool"
)

// Registry maps mode names to their [Definition], current configured
// options, and a memoized [Instance] for [Registry.Get].
//
// A zero Registry is not usable; construct one with [NewRegistry], which
// also registers the three mandatory built-in modes ("full", "partial",
// "none").
type Registry struct {
	mu         sync.Mutex
	defs       map[string]Definition
	configured map[string]map[string]any
	cached     map[string]*Instance
	builtin    map[string]bool
}

// NewRegistry creates a Registry with the mandatory built-in modes
// registered: "full", "partial", and "none". p supplies the shared
// mask-string pool backing "full" and "partial".
func NewRegistry(p *pool.Pool) *Registry {
	r := &Registry{
		defs:       make(map[string]Definition),
		configured: make(map[string]map[string]any),
		cached:     make(map[string]*Instance),
		builtin:    make(map[string]bool),
	}

	_ = r.Register("full", fullDefinition(p))
	_ = r.Register("partial", partialDefinition(p))
	_ = r.Register("none", noneDefinition())

	r.builtin["full"] = true
	r.builtin["partial"] = true
	r.builtin["none"] = true

	return r
}

// Register adds or replaces a mode definition, seeding its configuration
// from def.DefaultOptions. Registering over an existing name resets its
// configured options to the new definition's defaults.
func (r *Registry) Register(name string, def Definition) error {
	if name == "" || def.Apply == nil {
		return fmt.Errorf("%w: %q", ErrInvalidDefinition, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[name] = def
	r.configured[name] = cloneOptions(def.DefaultOptions)
	delete(r.cached, name)

	return nil
}

// Configure validates options against name's declared schema (if any) and,
// on success, merges them over the mode's current configuration. On
// failure the previous configuration is retained untouched, per the
// engine's SchemaViolation handling.
func (r *Registry) Configure(name string, options map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	merged := cloneOptions(r.configured[name])
	maps.Copy(merged, options)

	if def.OptionSchema != nil {
		resolved, err := def.OptionSchema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("%w: %q: resolving schema: %w", ErrSchemaViolation, name, err)
		}

		if err := resolved.Validate(merged); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrSchemaViolation, name, err)
		}
	}

	r.configured[name] = merged
	delete(r.cached, name)

	return nil
}

// Create returns a new [Instance] for name, combining its currently
// configured options with overrides (overrides win). Unlike Configure,
// Create does not mutate the registry's stored configuration and does not
// re-validate against the option schema -- it is meant for one-off,
// call-scoped instances.
func (r *Registry) Create(name string, overrides map[string]any) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	options := cloneOptions(r.configured[name])
	maps.Copy(options, overrides)

	return &Instance{name: name, apply: def.Apply, options: options}, nil
}

// Get returns name's memoized configured [Instance], building and caching
// it on first use. The cache is invalidated by [Registry.Configure] or
// [Registry.Register].
func (r *Registry) Get(name string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst, ok := r.cached[name]; ok {
		return inst, true
	}

	def, ok := r.defs[name]
	if !ok {
		return nil, false
	}

	inst := &Instance{name: name, apply: def.Apply, options: cloneOptions(r.configured[name])}
	r.cached[name] = inst

	return inst, true
}

// List returns all registered mode names, sorted.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Info describes name's current registration, or (Info{}, false) if name
// is not registered.
func (r *Registry) Info(name string) (Info, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[name]
	if !ok {
		return Info{}, false
	}

	return Info{
		Name:      name,
		Options:   cloneOptions(r.configured[name]),
		HasSchema: def.OptionSchema != nil,
		IsBuiltin: r.builtin[name],
	}, true
}

func cloneOptions(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	maps.Copy(out, m)

	return out
}
