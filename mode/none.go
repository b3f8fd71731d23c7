package mode

// noneDefinition builds the "none" mode: the value passes through
// unmasked. Used for keys and sources explicitly excluded from masking.
func noneDefinition() Definition {
	return Definition{
		Apply: func(ctx Context) string {
			return ctx.Value
		},
	}
}
