package engine

import (
	"path/filepath"

	"go.envmask.dev/core/edf"
	"go.envmask.dev/core/mode"
)

// Generate is the decoration builder (§4.D): it parses input (or hits
// the parse cache), resolves a mode per entry via the pattern table, and
// emits one [MaskRecord] per entry whose mask differs from its value.
func (e *Engine) Generate(input []byte, source string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.generateLocked(input, source)
}

func (e *Engine) generateLocked(input []byte, source string) (Result, error) {
	parsed, err := e.parseLocked(input, edf.Options{IncludeComments: true, TrackPositions: true})
	if err != nil {
		return Result{}, err
	}

	masks := e.decorateLocked(parsed, source)

	return Result{Masks: masks, LineOffsets: parsed.LineOffsets}, nil
}

// decorateLocked runs the decoration algorithm over an already-parsed
// result. Caller must hold e.mu.
func (e *Engine) decorateLocked(parsed *edf.ParseResult, source string) []MaskRecord {
	sourceBasename := ""
	if source != "" {
		sourceBasename = filepath.Base(source)
	}

	keyModeMemo := make(map[string]string, len(parsed.Entries))
	instanceMemo := make(map[string]*mode.Instance, 4)

	masks := make([]MaskRecord, 0, len(parsed.Entries))

	for _, entry := range parsed.Entries {
		if entry.IsComment && e.skipComments {
			continue
		}

		modeName, ok := keyModeMemo[string(entry.Key)]
		if !ok {
			modeName = e.table.Resolve(string(entry.Key), sourceBasename)
			keyModeMemo[string(entry.Key)] = modeName
		}

		inst, ok := instanceMemo[modeName]
		if !ok {
			inst = e.resolveInstanceLocked(modeName)
			instanceMemo[modeName] = inst
		}

		ctx := mode.Context{
			Key:        string(entry.Key),
			Value:      string(entry.Value),
			Source:     sourceBasename,
			LineNumber: entry.LineNumber,
			QuoteType:  entry.QuoteType,
			IsComment:  entry.IsComment,
		}

		maskText := inst.Apply(ctx)
		if maskText == ctx.Value {
			continue
		}

		masks = append(masks, MaskRecord{
			LineNumber:   entry.LineNumber,
			ValueEndLine: entry.ValueEndLine,
			ValueStart:   entry.ValueStart,
			ValueEnd:     entry.ValueEnd,
			Mask:         maskText,
			QuoteType:    entry.QuoteType,
			Value:        entry.Value,
		})
	}

	return masks
}

// resolveInstanceLocked returns modeName's configured instance, falling
// back to the table's default mode (with a once-per-process diagnostic)
// if modeName is not registered.
func (e *Engine) resolveInstanceLocked(modeName string) *mode.Instance {
	if inst, ok := e.modes.Get(modeName); ok {
		return inst
	}

	e.warnModeNotFound(modeName)

	fallback := e.table.DefaultMode()
	if inst, ok := e.modes.Get(fallback); ok {
		return inst
	}

	// The default mode itself is unregistered: degrade to identity
	// rather than panicking, since every record's safety invariant is
	// "references bytes that exist in the input" -- an unmasked value is
	// safe to return, just not private.
	return identityInstance
}

var identityInstance *mode.Instance

func init() {
	reg := mode.NewRegistry(nil)

	inst, ok := reg.Get("none")
	if !ok {
		panic("engine: built-in none mode missing from registry")
	}

	identityInstance = inst
}
