package engine

import "go.envmask.dev/core/edf"

// MaskRecord is one emitted masking decoration: a byte span of the
// original input plus the replacement text the host should overlay over
// it.
type MaskRecord struct {
	// LineNumber, ValueEndLine carry the entry's line span (1-indexed).
	LineNumber, ValueEndLine int
	// ValueStart, ValueEnd are absolute byte offsets into the input,
	// identical in meaning to [edf.Entry.ValueStart] / ValueEnd.
	ValueStart, ValueEnd int
	// Mask is the replacement text chosen by the resolved mode.
	Mask string
	// QuoteType is carried through so the host can exclude the
	// surrounding quote bytes from the overlaid span.
	QuoteType edf.QuoteType
	// Value is a borrowed reference to the original value bytes, kept
	// for diagnostics only; it is not copied and is valid only as long
	// as the input that produced it is not mutated or freed.
	Value []byte
}

// Result is the output of [Engine.Generate].
type Result struct {
	Masks       []MaskRecord
	LineOffsets []int
}

// IncrementalResult is the output of [Engine.GenerateIncremental].
type IncrementalResult struct {
	// Masks is the complete, merged record list -- the new cache state.
	Masks []MaskRecord
	// MasksToApply is the minimal subset the overlay must redraw.
	MasksToApply []MaskRecord
	LineOffsets  []int
	// Skipped is true when the content fingerprint fast path determined
	// nothing changed and no parsing or decoration occurred.
	Skipped bool
}

// Edit describes what changed in a buffer since the last
// [Engine.GenerateIncremental] call for its handle.
//
// The zero Edit is not a full rebuild -- it is an empty [NewLineRange](0,
// 0), matching no lines. Callers must use [FullRebuild] explicitly, and a
// line-scoped edit must use [NewLineRange].
type Edit struct {
	full           bool
	minLine        int
	maxLine        int
}

// FullRebuild is an [Edit] that forces the controller to reparse and
// redecorate the entire buffer.
var FullRebuild = Edit{full: true}

// NewLineRange returns an [Edit] scoping recomputation to 1-indexed,
// inclusive lines [minLine, maxLine]. Callers must use [FullRebuild]
// instead whenever the edit changed the buffer's line count -- stale
// line-number offsets on cached records outside the range would
// otherwise be returned unchanged.
func NewLineRange(minLine, maxLine int) Edit {
	return Edit{minLine: minLine, maxLine: maxLine}
}

// IsFullRebuild reports whether e requires a full reparse.
func (e Edit) IsFullRebuild() bool {
	return e.full
}

// Range returns e's inclusive line bounds. Only meaningful when
// !e.IsFullRebuild().
func (e Edit) Range() (minLine, maxLine int) {
	return e.minLine, e.maxLine
}
