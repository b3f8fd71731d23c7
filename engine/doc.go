// Package engine ties the tokeniser ([go.envmask.dev/core/edf]), pattern
// resolver ([go.envmask.dev/core/pattern]), and mode registry
// ([go.envmask.dev/core/mode]) into the masking engine's public surface:
// parse, generate, generate-incremental, mode registration, and policy
// configuration.
//
// An [Engine] is single-threaded-synchronous per call -- it performs no
// I/O and holds no background workers -- but it does carry process-wide
// mutable state (the parse-result cache, the mask-string pool, per-buffer
// caches) guarded by a single mutex, so one Engine is safe to share
// across goroutines that are willing to serialize on it. A host that
// wants lock-free concurrency should run one Engine per thread, as the
// editor-integration this package supports does: its Lua host is
// single-threaded and never needs the lock to contend.
package engine
