package policy

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for policy configuration, allowing callers
// to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	File        string
	DefaultMode string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for policy configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Load] to obtain a [*Policy].
type Config struct {
	File        string
	DefaultMode string
	Flags       Flags
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		File:        "policy-file",
		DefaultMode: "default-mode",
	}

	return f.NewConfig()
}

// RegisterFlags adds policy flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.File, c.Flags.File, "",
		"path to a policy YAML file (patterns, sources, default_mode, modes)")
	flags.StringVar(&c.DefaultMode, c.Flags.DefaultMode, "full",
		"fallback mode name when no pattern matches and no policy file overrides it")
}

// RegisterCompletions registers shell completions for policy flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.DefaultMode,
		cobra.FixedCompletions([]string{"full", "partial", "none"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering default-mode completion: %w", err)
	}

	return nil
}

// Load returns the configured [*Policy]: either the file named by
// c.File, or an empty policy defaulting everything to c.DefaultMode if
// no file was given.
func (c *Config) Load() (*Policy, error) {
	if c.File == "" {
		return &Policy{DefaultMode: c.DefaultMode}, nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("policy: reading %q: %w", c.File, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Parse fills a missing default_mode with "full"; the flag value is
	// used instead when the file leaves default_mode unset.
	var raw struct {
		DefaultMode string `yaml:"default_mode"`
	}

	if err := yaml.Unmarshal(data, &raw); err == nil && raw.DefaultMode == "" {
		p.DefaultMode = c.DefaultMode
	}

	return p, nil
}
