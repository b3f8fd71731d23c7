package policy

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"go.envmask.dev/core/pattern"
)

// PatternRule is a single YAML-decoded (glob, mode) pair.
type PatternRule struct {
	Glob string `yaml:"glob"`
	Mode string `yaml:"mode"`
}

// Policy is the full masking policy: key and source glob rules, the
// fallback mode, and per-mode option overrides. Loading only decodes the
// overrides; they take effect when an engine installs the policy.
type Policy struct {
	DefaultMode string                   `yaml:"default_mode"`
	Patterns    []PatternRule            `yaml:"patterns"`
	Sources     []PatternRule            `yaml:"sources"`
	Modes       map[string]map[string]any `yaml:"modes"`
}

// Load reads and decodes a policy file at path. A missing default_mode
// defaults to "full".
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: reading %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes policy YAML from data.
func Parse(data []byte) (*Policy, error) {
	var p Policy

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}

	if p.DefaultMode == "" {
		p.DefaultMode = "full"
	}

	return &p, nil
}

// CompileTable compiles the policy's key and source patterns into a
// [pattern.Table].
func (p *Policy) CompileTable() (*pattern.Table, error) {
	keyRules := make([]pattern.Rule, len(p.Patterns))
	for i, r := range p.Patterns {
		keyRules[i] = pattern.Rule{Glob: r.Glob, Mode: r.Mode}
	}

	sourceRules := make([]pattern.Rule, len(p.Sources))
	for i, r := range p.Sources {
		sourceRules[i] = pattern.Rule{Glob: r.Glob, Mode: r.Mode}
	}

	return pattern.Compile(keyRules, sourceRules, p.DefaultMode)
}
