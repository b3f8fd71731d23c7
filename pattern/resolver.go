package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Rule pairs a glob pattern with the mode name it resolves to.
type Rule struct {
	Glob string
	Mode string
}

// Table is a compiled, specificity-ordered set of key and source patterns,
// ready for repeated [Table.Resolve] calls.
type Table struct {
	keyMatchers    []compiledRule
	sourceMatchers []compiledRule
	defaultMode    string
}

type compiledRule struct {
	glob        glob.Glob
	mode        string
	exact       string // non-empty if this rule is a literal (no wildcards)
	specificity specificity
}

// specificity orders rules per spec: exact match first, then fewer
// wildcards, then longer literal prefix, then earlier declaration.
type specificity struct {
	isExact       bool
	wildcardCount int
	prefixLen     int
	declOrder     int
}

// less reports whether s is strictly more specific than o (should sort
// earlier).
func (s specificity) less(o specificity) bool {
	if s.isExact != o.isExact {
		return s.isExact
	}

	if s.wildcardCount != o.wildcardCount {
		return s.wildcardCount < o.wildcardCount
	}

	if s.prefixLen != o.prefixLen {
		return s.prefixLen > o.prefixLen
	}

	return s.declOrder < o.declOrder
}

// Compile compiles key and source pattern rules into a [Table]. Rules are
// evaluated against the key first (in specificity order), then, if a
// source basename is supplied, against source patterns, then defaultMode.
func Compile(keyRules, sourceRules []Rule, defaultMode string) (*Table, error) {
	keyMatchers, err := compileRules(keyRules)
	if err != nil {
		return nil, fmt.Errorf("pattern: compiling key patterns: %w", err)
	}

	sourceMatchers, err := compileRules(sourceRules)
	if err != nil {
		return nil, fmt.Errorf("pattern: compiling source patterns: %w", err)
	}

	return &Table{
		keyMatchers:    keyMatchers,
		sourceMatchers: sourceMatchers,
		defaultMode:    defaultMode,
	}, nil
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, len(rules))

	for i, r := range rules {
		g, err := glob.Compile(r.Glob)
		if err != nil {
			return nil, fmt.Errorf("pattern: %q: %w", r.Glob, err)
		}

		wildcards := strings.Count(r.Glob, "*") + strings.Count(r.Glob, "?")

		compiled[i] = compiledRule{
			glob: g,
			mode: r.Mode,
			specificity: specificity{
				isExact:       wildcards == 0,
				wildcardCount: wildcards,
				prefixLen:     literalPrefixLen(r.Glob),
				declOrder:     i,
			},
		}

		if wildcards == 0 {
			compiled[i].exact = r.Glob
		}
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].specificity.less(compiled[j].specificity)
	})

	return compiled, nil
}

// literalPrefixLen returns the length of the longest literal (non-wildcard)
// prefix of a glob pattern.
func literalPrefixLen(pat string) int {
	for i := 0; i < len(pat); i++ {
		if pat[i] == '*' || pat[i] == '?' {
			return i
		}
	}

	return len(pat)
}

// Resolve returns the mode name for key, falling back to sourceBasename
// patterns and finally the configured default mode. sourceBasename may be
// empty, in which case only key patterns and the default are consulted.
func (t *Table) Resolve(key, sourceBasename string) string {
	if t == nil {
		return ""
	}

	if mode, ok := match(t.keyMatchers, key); ok {
		return mode
	}

	if sourceBasename != "" {
		if mode, ok := match(t.sourceMatchers, sourceBasename); ok {
			return mode
		}
	}

	return t.defaultMode
}

// DefaultMode returns t's configured fallback mode name.
func (t *Table) DefaultMode() string {
	if t == nil {
		return ""
	}

	return t.defaultMode
}

func match(matchers []compiledRule, s string) (string, bool) {
	for _, m := range matchers {
		if m.exact != "" {
			if m.exact == s {
				return m.mode, true
			}

			continue
		}

		if m.glob.Match(s) {
			return m.mode, true
		}
	}

	return "", false
}
