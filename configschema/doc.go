// Package configschema generates a JSON Schema (Draft 7) describing the
// shape of a policy YAML file, on a best-effort basis: types are inferred
// structurally from the YAML document rather than declared up front, and
// plain comments attached to a key become that property's description.
//
// This is editor/validation tooling around the policy config artifact,
// not part of the masking engine itself -- a host embedding the engine
// never needs to call [Generate]; it exists so an editor can offer
// completion and validation while a user edits their policy file.
//
// The pipeline is a trimmed version of a general-purpose YAML-to-schema
// inference pipeline: no pluggable annotation system (a policy file has
// no analogue to Helm's "# @schema" block comments) and no multi-document
// union merge (a policy file is always exactly one YAML document). What
// remains is structural inference plus comment extraction, walked once
// over the policy document's known top-level shape (patterns, sources,
// default_mode, modes).
//
// Generated schemas fail open: additionalProperties defaults to true,
// and a property is never marked required. The goal is to guide, not to
// strictly validate -- a policy file that doesn't yet set every field is
// still a file a user should be able to edit without the schema
// complaining.
package configschema
