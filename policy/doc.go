// Package policy loads and holds the configuration that drives the
// pattern resolver and mode registry: key and source glob rules, their
// target mode names, a default mode, and per-mode option overrides.
//
// A [Policy] is read from a YAML file with [Load] (via
// [github.com/goccy/go-yaml], the YAML library used throughout this
// module) or built programmatically. [Config] wires CLI flags for a
// policy file path and default mode, following the Flags /
// RegisterFlags / RegisterCompletions / NewConfig pattern used by the
// sibling log and profile packages.
package policy
