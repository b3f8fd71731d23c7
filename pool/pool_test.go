package pool_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.envmask.dev/core/pool"
)

func TestFill(t *testing.T) {
	t.Parallel()

	p := pool.New()

	require.Equal(t, "", p.Fill('*', 0))
	require.Equal(t, "", p.Fill('*', -3))
	require.Equal(t, "***", p.Fill('*', 3))
	require.Equal(t, "•••••", p.Fill('•', 5))
}

func TestFillCachesIdenticalResult(t *testing.T) {
	t.Parallel()

	p := pool.New()

	first := p.Fill('*', 12)
	second := p.Fill('*', 12)

	assert.Equal(t, first, second)
}

func TestFillBeyondCacheBound(t *testing.T) {
	t.Parallel()

	p := pool.New()

	got := p.Fill('#', 500)
	assert.Equal(t, strings.Repeat("#", 500), got)
	assert.Len(t, got, 500)
}

func TestFillDistinguishesCharacters(t *testing.T) {
	t.Parallel()

	p := pool.New()

	assert.Equal(t, "aaa", p.Fill('a', 3))
	assert.Equal(t, "bbb", p.Fill('b', 3))
}
