// Package main provides a demo/inspection CLI for the masking engine: it
// reads a dotenv-shaped file (or stdin), applies the configured policy,
// and prints the resulting mask records as indented JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.envmask.dev/core/engine"
	"go.envmask.dev/core/log"
	"go.envmask.dev/core/policy"
	"go.envmask.dev/core/profile"
	"go.envmask.dev/core/version"
)

func main() {
	policyCfg := policy.NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "envmaskctl [flags] <file>",
		Short: "Generate masked decorations for a dotenv-shaped file",
		Long: `envmaskctl parses a dotenv-shaped file (or stdin, given "-"), resolves a
mask mode per key via the configured policy, and prints the resulting mask
records as indented JSON.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(policyCfg, logCfg, profileCfg, args[0])
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("envmaskctl %s (%s, %s/%s, revision %s)\n",
		version.Version, version.GoVersion, version.GoOS, version.GoArch, version.Revision))

	policyCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	profileCfg.RegisterFlags(rootCmd.Flags())

	if err := policyCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(policyCfg *policy.Config, logCfg *log.Config, profileCfg *profile.Config, path string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("log handler: %w", err)
	}

	profiler := profileCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}

	defer func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "stopping profiler: %v\n", stopErr)
		}
	}()

	p, err := policyCfg.Load()
	if err != nil {
		return fmt.Errorf("loading policy: %w", err)
	}

	var (
		input  []byte
		source string
	)

	if path == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(path)
		source = path
	}

	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	e := engine.New(engine.WithLogger(slog.New(handler)))

	if err := e.SetPolicy(p); err != nil {
		return fmt.Errorf("applying policy: %w", err)
	}

	result, err := e.Generate(input, source)
	if err != nil {
		return fmt.Errorf("generating masks: %w", err)
	}

	out, err := json.MarshalIndent(result.Masks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	out = append(out, '\n')

	_, err = os.Stdout.Write(out)

	return err
}
