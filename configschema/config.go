package configschema

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for schema-generation output, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Output string
	Indent string
}

// Config holds CLI flag values controlling how a generated schema is
// written out.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags  Flags
	Output string
	Indent int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Output: "output",
			Indent: "indent",
		},
		Indent: 2,
	}
}

// RegisterFlags adds output flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
}

// RegisterCompletions registers shell completions for the output flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd.RegisterFlagCompletionFunc(c.Flags.Indent, noFileComp)
}

// IndentString returns c.Indent spaces, defaulting to two when Indent is
// non-positive.
func (c *Config) IndentString() string {
	if c.Indent <= 0 {
		return "  "
	}

	indent := ""
	for range c.Indent {
		indent += " "
	}

	return indent
}
