package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.envmask.dev/core/engine"
	"go.envmask.dev/core/policy"
)

func TestGenerateUnquotedSingleLine(t *testing.T) {
	t.Parallel()

	e := engine.New()

	result, err := e.Generate([]byte("API_KEY=secret123\n"), "")
	require.NoError(t, err)

	require.Len(t, result.Masks, 1)

	m := result.Masks[0]
	assert.Equal(t, 8, m.ValueStart)
	assert.Equal(t, 17, m.ValueEnd)
	assert.Equal(t, 1, m.LineNumber)
	assert.Equal(t, 1, m.ValueEndLine)
	assert.Equal(t, "*********", m.Mask)
}

func TestGeneratePartialWithPatternMatch(t *testing.T) {
	t.Parallel()

	e := engine.New()

	require.NoError(t, e.ConfigureMode("partial", map[string]any{
		"show_start": 2,
		"show_end":   2,
		"min_mask":   3,
	}))

	p, err := policy.Parse([]byte(`
default_mode: full
patterns:
  - glob: "*_TOKEN"
    mode: partial
`))
	require.NoError(t, err)
	require.NoError(t, e.SetPolicy(p))

	// Plain "TOKEN" does not match "*_TOKEN": falls through to full.
	result, err := e.Generate([]byte("TOKEN=mysecretvalue\n"), "")
	require.NoError(t, err)
	require.Len(t, result.Masks, 1)
	assert.Equal(t, "*************", result.Masks[0].Mask)

	// "AUTH_TOKEN" matches "*_TOKEN": partial applies.
	result, err = e.Generate([]byte("AUTH_TOKEN=secrettoken\n"), "")
	require.NoError(t, err)
	require.Len(t, result.Masks, 1)
	assert.Equal(t, "se*******en", result.Masks[0].Mask)
}

func TestSetPolicyAppliesModeOptionOverrides(t *testing.T) {
	t.Parallel()

	e := engine.New()

	p, err := policy.Parse([]byte(`
default_mode: partial
modes:
  partial:
    show_start: 2
    show_end: 2
    min_mask: 3
`))
	require.NoError(t, err)
	require.NoError(t, e.SetPolicy(p))

	result, err := e.Generate([]byte("AUTH_TOKEN=secrettoken\n"), "")
	require.NoError(t, err)
	require.Len(t, result.Masks, 1)
	assert.Equal(t, "se*******en", result.Masks[0].Mask)
}

func TestSetPolicyRejectsUnknownModeInModesBlock(t *testing.T) {
	t.Parallel()

	e := engine.New()

	p, err := policy.Parse([]byte(`
default_mode: full
modes:
  nonexistent:
    show_start: 2
`))
	require.NoError(t, err)

	err = e.SetPolicy(p)
	require.Error(t, err)
}

func TestGenerateSkipsCommentsWhenConfigured(t *testing.T) {
	t.Parallel()

	e := engine.New(engine.WithSkipComments(true))

	result, err := e.Generate([]byte("#FOO=bar\nBAR=baz\n"), "")
	require.NoError(t, err)

	require.Len(t, result.Masks, 1)
	assert.Equal(t, "baz", string(result.Masks[0].Value))
	assert.Equal(t, 2, result.Masks[0].LineNumber)
}

func TestGenerateNoneModeEmitsNoRecord(t *testing.T) {
	t.Parallel()

	e := engine.New()

	p, err := policy.Parse([]byte(`
default_mode: full
patterns:
  - glob: "PUBLIC_*"
    mode: none
`))
	require.NoError(t, err)
	require.NoError(t, e.SetPolicy(p))

	result, err := e.Generate([]byte("PUBLIC_URL=https://example.com\nSECRET=abc\n"), "")
	require.NoError(t, err)

	require.Len(t, result.Masks, 1)
	assert.Equal(t, 2, result.Masks[0].LineNumber)
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\nB=two\nC=\"three\"\n")

	first, err := e.Generate(input, "")
	require.NoError(t, err)

	second, err := e.Generate(input, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestKeyPatternWinsOverSourcePattern(t *testing.T) {
	t.Parallel()

	e := engine.New()

	p := &policy.Policy{
		DefaultMode: "none",
		Patterns:    []policy.PatternRule{{Glob: "EXPLICIT_KEY", Mode: "full"}},
		Sources:     []policy.PatternRule{{Glob: ".env.production", Mode: "none"}},
	}
	require.NoError(t, e.SetPolicy(p))

	// EXPLICIT_KEY matches a key pattern (full) even though the source
	// basename also matches a source pattern (none); the key pattern wins.
	result, err := e.Generate([]byte("EXPLICIT_KEY=value\nOTHER=value2\n"), "/path/.env.production")
	require.NoError(t, err)

	require.Len(t, result.Masks, 1)
	assert.Equal(t, "*****", result.Masks[0].Mask)
}

func TestGenerateIncrementalFullRebuild(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\nB=2\n")

	result, err := e.GenerateIncremental("buf1", input, "", engine.FullRebuild)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, result.Masks, result.MasksToApply)
}

func TestGenerateIncrementalFastPathSkipsUnchanged(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\nB=2\n")

	_, err := e.GenerateIncremental("buf1", input, "", engine.FullRebuild)
	require.NoError(t, err)

	second, err := e.GenerateIncremental("buf1", input, "", engine.FullRebuild)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
}

func TestGenerateIncrementalLineRangeMatchesFullGenerate(t *testing.T) {
	t.Parallel()

	e1 := engine.New()
	e2 := engine.New()

	// The edited line's byte length is unchanged so downstream absolute
	// offsets (carried as-is on unchanged cached records, per the
	// controller's merge algorithm) remain valid for comparison.
	oldInput := []byte("A=1\nB=2\nC=3\n")
	newInput := []byte("A=1\nB=9\nC=3\n")

	_, err := e1.GenerateIncremental("buf", oldInput, "", engine.FullRebuild)
	require.NoError(t, err)

	incResult, err := e1.GenerateIncremental("buf", newInput, "", engine.NewLineRange(2, 2))
	require.NoError(t, err)

	fullResult, err := e2.Generate(newInput, "")
	require.NoError(t, err)

	assert.Equal(t, fullResult.Masks, incResult.Masks)
}

func TestMarkPastedForcesFullRebuildOnNextCall(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\nB=2\n")

	_, err := e.GenerateIncremental("buf", input, "", engine.FullRebuild)
	require.NoError(t, err)

	e.MarkPasted("buf")

	// Even though the content is unchanged and a narrow LineRange is
	// given, the paste latch forces a full rebuild (not a skip, not a
	// line-scoped merge).
	result, err := e.GenerateIncremental("buf", input, "", engine.NewLineRange(1, 1))
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, result.Masks, result.MasksToApply)
}

func TestForgetBufferDropsCache(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\n")

	_, err := e.GenerateIncremental("buf", input, "", engine.FullRebuild)
	require.NoError(t, err)

	e.ForgetBuffer("buf")

	result, err := e.GenerateIncremental("buf", input, "", engine.FullRebuild)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestListAndConfigureModes(t *testing.T) {
	t.Parallel()

	e := engine.New()

	assert.Equal(t, []string{"full", "none", "partial"}, e.ListModes())

	info, ok := e.ModeInfo("full")
	require.True(t, ok)
	assert.True(t, info.IsBuiltin)
}

func TestClearCaches(t *testing.T) {
	t.Parallel()

	e := engine.New()

	input := []byte("A=1\n")
	_, err := e.GenerateIncremental("buf", input, "", engine.FullRebuild)
	require.NoError(t, err)

	e.ClearCaches()

	result, err := e.GenerateIncremental("buf", input, "", engine.FullRebuild)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}
