// Package main provides the CLI entry point for envmaskschema, a tool
// that generates a JSON Schema (Draft 7) describing the shape of a
// masking policy YAML file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.envmask.dev/core/configschema"
)

func main() {
	cfg := configschema.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "envmaskschema [flags] <policy.yaml>",
		Short: "Generate JSON Schema for a masking policy file",
		Long: `envmaskschema infers a Draft 7 JSON Schema from a masking policy YAML
file's structure and comments, on a best-effort basis, so editors can offer
completion and validation while a user edits their policy file.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args[0])
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *configschema.Config, path string) error {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", configschema.ErrReadInput, err)
	}

	schema, err := configschema.Generate(data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(schema, "", cfg.IndentString())
	if err != nil {
		return fmt.Errorf("%w: %w", configschema.ErrWriteOutput, err)
	}

	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(cfg.Output, out, 0o644)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", configschema.ErrWriteOutput, err)
	}

	return nil
}
