// Package mode implements named masking strategies: the mandatory built-in
// modes "full", "partial", and "none", plus a [Registry] that custom modes
// register into.
//
// A mode is a pure function of a [Context] to a replacement string, plus
// an optional [*jsonschema.Schema] describing its configurable options.
// [Registry.Configure] validates caller-supplied options against that
// schema before they take effect, using
// [github.com/google/jsonschema-go/jsonschema] -- the same library the
// teacher uses to emit schemas is used here, symmetrically, to validate
// against one.
package mode
