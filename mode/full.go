package mode

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.envmask.dev/core/pool"
)

// fullDefinition builds the "full" mode: one mask_char per byte of the
// value, unless fixed_length or preserve_length=false overrides the
// output length.
func fullDefinition(p *pool.Pool) Definition {
	return Definition{
		Apply: func(ctx Context) string {
			char := firstRune(getString(ctx.Config, "mask_char", "*"))

			if n, ok := getIntOK(ctx.Config, "fixed_length"); ok && n >= 0 {
				return p.Fill(char, n)
			}

			if !getBool(ctx.Config, "preserve_length", true) {
				return p.Fill(char, 1)
			}

			return p.Fill(char, len(ctx.Value))
		},
		OptionSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mask_char":       {Type: "string"},
				"preserve_length": {Type: "boolean"},
				"fixed_length":    {Type: "integer", Minimum: jsonschema.Ptr(0.0)},
			},
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		},
		DefaultOptions: map[string]any{
			"mask_char":       "*",
			"preserve_length": true,
		},
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return '*'
}
