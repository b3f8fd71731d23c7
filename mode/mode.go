package mode

import (
	"errors"

	"github.com/google/jsonschema-go/jsonschema"

	"go.envmask.dev/core/edf"
)

// Sentinel errors returned by [Registry] methods.
var (
	// ErrNotFound is returned by [Registry.Configure] and [Registry.Create]
	// when name is not registered.
	ErrNotFound = errors.New("mode: not registered")
	// ErrSchemaViolation is returned by [Registry.Configure] when the
	// supplied options fail the mode's declared option schema. The
	// mode's previously configured options are left untouched.
	ErrSchemaViolation = errors.New("mode: schema violation")
	// ErrInvalidDefinition is returned by [Registry.Register] when def is
	// missing a required field.
	ErrInvalidDefinition = errors.New("mode: invalid definition")
)

// Context is the fixed, reusable record passed to a mode's Apply function.
// Callers that drive many entries (see package engine's decoration
// builder) may mutate and reuse a single Context across a loop, per the
// "reusable context" design called for by the masking engine this package
// supports -- Apply must not retain ctx or any of its fields past the call.
type Context struct {
	Key       string
	Value     string
	Source    string
	LineNumber int
	QuoteType edf.QuoteType
	IsComment bool
	// Config holds the mode instance's currently bound options (defaults
	// merged with any Configure/Create overrides).
	Config map[string]any
}

// Definition registers a mode's behavior: a pure function from [Context] to
// a replacement string, plus an optional schema describing its options.
type Definition struct {
	// Apply computes the replacement string for ctx. It must be pure
	// with respect to its inputs; side effects are undefined behavior.
	Apply func(Context) string
	// OptionSchema, if non-nil, validates options passed to
	// [Registry.Configure].
	OptionSchema *jsonschema.Schema
	// DefaultOptions seed a newly registered mode's configuration.
	DefaultOptions map[string]any
}

// Info describes a registered mode's current configuration, returned by
// [Registry.Info].
type Info struct {
	Name         string
	Options      map[string]any
	HasSchema    bool
	IsBuiltin    bool
}

// Instance is a mode bound to a fixed set of options, ready for repeated
// [Instance.Apply] calls. Instances are obtained from [Registry.Get] or
// [Registry.Create] and are safe to reuse within a single decoration pass.
type Instance struct {
	name    string
	apply   func(Context) string
	options map[string]any
}

// Name returns the mode name this instance was created from.
func (i *Instance) Name() string { return i.name }

// Apply computes ctx's replacement string using this instance's bound
// options, which replace ctx.Config in the copy of ctx passed to the mode;
// the caller's ctx is not modified.
func (i *Instance) Apply(ctx Context) string {
	ctx.Config = i.options

	return i.apply(ctx)
}
