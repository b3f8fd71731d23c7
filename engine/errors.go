package engine

import (
	"errors"

	"go.envmask.dev/core/edf"
)

// Sentinel errors surfaced by [Engine] methods.
var (
	// ErrInvalidEncoding is [edf.ErrInvalidEncoding]: errors that Engine
	// methods return for input that is not valid UTF-8 match it under
	// [errors.Is], and no records are produced alongside them.
	ErrInvalidEncoding = edf.ErrInvalidEncoding
	// ErrBufferNotFound names a buffer handle with no cache entry. No
	// [Engine] method returns it: [Engine.GenerateIncremental] starts an
	// empty cache entry for an unknown handle (a LineRange edit then
	// decorates only the lines in its range), and [Engine.ForgetBuffer]
	// ignores unknown handles.
	ErrBufferNotFound = errors.New("engine: buffer handle not cached")
)
