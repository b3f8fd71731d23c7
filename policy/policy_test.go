package policy_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.envmask.dev/core/policy"
)

const sampleYAML = `
default_mode: full
patterns:
  - glob: "*_TOKEN"
    mode: partial
  - glob: "PUBLIC_*"
    mode: none
sources:
  - glob: ".env.production"
    mode: full
modes:
  partial:
    show_start: 2
    show_end: 2
    min_mask: 3
`

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "full", p.DefaultMode)
	require.Len(t, p.Patterns, 2)
	assert.Equal(t, "partial", p.Patterns[0].Mode)

	modeOpts, ok := p.Modes["partial"]
	require.True(t, ok)
	assert.Equal(t, uint64(2), toUint(modeOpts["show_start"]))
}

func toUint(v any) uint64 {
	switch n := v.(type) {
	case int:
		return uint64(n)
	case uint64:
		return n
	case float64:
		return uint64(n)
	default:
		return 0
	}
}

func TestParseDefaultsMode(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte("patterns: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "full", p.DefaultMode)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := policy.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestCompileTableResolvesKeyOverSource(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte(sampleYAML))
	require.NoError(t, err)

	table, err := p.CompileTable()
	require.NoError(t, err)

	assert.Equal(t, "partial", table.Resolve("AUTH_TOKEN", ""))
	assert.Equal(t, "none", table.Resolve("PUBLIC_URL", ""))
	assert.Equal(t, "full", table.Resolve("UNMATCHED", ""))

	// The source rule for .env.production says full; the key rule wins.
	assert.Equal(t, "partial", table.Resolve("AUTH_TOKEN", ".env.production"))
}
