// Package pattern resolves a mode name for an entry's key and, failing
// that, its source file's basename, using an ordered set of glob patterns.
//
// Patterns are compiled once via [Compile] into a [Table]. [Table.Resolve]
// then performs the lookup spec'd as: an exact or glob match on the key
// wins over any source-basename match, and a key-pattern match always wins
// over a source-pattern match regardless of declaration order. Within each
// of the two pattern lists, the most specific pattern wins: an exact
// string beats a pattern with fewer wildcards, which beats one with a
// longer literal prefix, which beats one declared earlier.
package pattern
