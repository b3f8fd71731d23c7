package mode

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.envmask.dev/core/pool"
)

// partialDefinition builds the "partial" mode: show_start leading and
// show_end trailing bytes of the value, with mask_char filling the
// middle. Values no longer than show_start+show_end+min_mask fall back
// to fallback_mode ("full" or "none") in full, since a partial reveal of
// a very short secret can leak all of it.
//
// Lengths are counted in bytes, matching the byte-exact offsets the
// tokeniser reports elsewhere in this module.
func partialDefinition(p *pool.Pool) Definition {
	return Definition{
		Apply: func(ctx Context) string {
			value := ctx.Value
			showStart := getInt(ctx.Config, "show_start", 0)
			showEnd := getInt(ctx.Config, "show_end", 4)
			minMask := getInt(ctx.Config, "min_mask", 1)
			char := firstRune(getString(ctx.Config, "mask_char", "*"))

			if showStart < 0 {
				showStart = 0
			}

			if showEnd < 0 {
				showEnd = 0
			}

			if len(value) <= showStart+showEnd+minMask {
				return applyFallback(getString(ctx.Config, "fallback_mode", "full"), value, char, p)
			}

			middle := len(value) - showStart - showEnd

			return value[:showStart] + p.Fill(char, middle) + value[len(value)-showEnd:]
		},
		OptionSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mask_char":     {Type: "string"},
				"show_start":    {Type: "integer", Minimum: jsonschema.Ptr(0.0)},
				"show_end":      {Type: "integer", Minimum: jsonschema.Ptr(0.0)},
				"min_mask":      {Type: "integer", Minimum: jsonschema.Ptr(0.0)},
				"fallback_mode": {Type: "string", Enum: []any{"full", "none"}},
			},
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		},
		DefaultOptions: map[string]any{
			"mask_char":     "*",
			"show_start":    0,
			"show_end":      4,
			"min_mask":      1,
			"fallback_mode": "full",
		},
	}
}

// applyFallback handles partial's fallback_mode for values too short to
// partially reveal without defeating the mask.
func applyFallback(fallback, value string, char rune, p *pool.Pool) string {
	switch fallback {
	case "none":
		return value
	default: // "full"
		return p.Fill(char, len(value))
	}
}
