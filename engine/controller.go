package engine

import (
	"sort"

	"go.envmask.dev/core/edf"
	"go.envmask.dev/core/fingerprint"
)

// GenerateIncremental is the incremental controller (§4.E). It re-parses
// the full buffer (the tokeniser is fast enough that line-subset parsing
// is unneeded), then either redecorates everything (FullRebuild) or only
// the entries whose LineNumber falls in edit's range, merging the result
// with handle's cached records.
//
// A prior [Engine.MarkPasted] call for handle forces a FullRebuild on
// this invocation regardless of edit and of the content fingerprint,
// clearing the latch afterward. Otherwise, if
// edit is FullRebuild and input's content fingerprint matches the
// buffer's cached fingerprint, parsing and decoration are skipped
// entirely and the cached records are returned with Skipped = true.
func (e *Engine) GenerateIncremental(handle BufferHandle, input []byte, source string, edit Edit) (IncrementalResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, hasCache := e.buffers[handle]
	if !hasCache {
		st = &bufferState{}
		e.buffers[handle] = st
	}

	forced := st.forceFullRebuild
	if forced {
		edit = FullRebuild
		st.forceFullRebuild = false
	}

	digest := fingerprint.Compute(input)

	if edit.IsFullRebuild() {
		if hasCache && !forced && digest == st.fingerprint {
			return IncrementalResult{
				Masks:       st.masks,
				LineOffsets: st.lineOffsets,
				Skipped:     true,
			}, nil
		}

		result, err := e.generateLocked(input, source)
		if err != nil {
			return IncrementalResult{}, err
		}

		st.masks = result.Masks
		st.lineOffsets = result.LineOffsets
		st.lineCount = len(result.LineOffsets) - 1
		st.fingerprint = digest

		return IncrementalResult{
			Masks:        result.Masks,
			MasksToApply: result.Masks,
			LineOffsets:  result.LineOffsets,
		}, nil
	}

	minLine, maxLine := edit.Range()

	parsed, err := e.parseLocked(input, edf.Options{IncludeComments: true, TrackPositions: true})
	if err != nil {
		return IncrementalResult{}, err
	}

	unchanged := make([]MaskRecord, 0, len(st.masks))

	for _, m := range st.masks {
		if m.LineNumber < minLine || m.LineNumber > maxLine {
			unchanged = append(unchanged, m)
		}
	}

	scoped := &edf.ParseResult{LineOffsets: parsed.LineOffsets}
	for _, entry := range parsed.Entries {
		if entry.LineNumber >= minLine && entry.LineNumber <= maxLine {
			scoped.Entries = append(scoped.Entries, entry)
		}
	}

	fresh := e.decorateLocked(scoped, source)

	merged := make([]MaskRecord, 0, len(unchanged)+len(fresh))
	merged = append(merged, unchanged...)
	merged = append(merged, fresh...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ValueStart < merged[j].ValueStart
	})

	st.masks = merged
	st.lineOffsets = parsed.LineOffsets
	st.lineCount = len(parsed.LineOffsets) - 1
	st.fingerprint = digest

	return IncrementalResult{
		Masks:        merged,
		MasksToApply: fresh,
		LineOffsets:  parsed.LineOffsets,
	}, nil
}
