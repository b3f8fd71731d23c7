package fingerprint_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.envmask.dev/core/fingerprint"
)

func TestComputeIsStableForIdenticalInput(t *testing.T) {
	t.Parallel()

	input := []byte("API_KEY=secret123\nTOKEN=abc\n")

	assert.Equal(t, fingerprint.Compute(input), fingerprint.Compute(bytes.Clone(input)))
}

func TestComputeDiffersOnContentChange(t *testing.T) {
	t.Parallel()

	a := fingerprint.Compute([]byte("API_KEY=secret123\n"))
	b := fingerprint.Compute([]byte("API_KEY=secret124\n"))

	assert.NotEqual(t, a, b)
}

func TestComputeDiffersOnLengthChange(t *testing.T) {
	t.Parallel()

	a := fingerprint.Compute([]byte("A=1"))
	b := fingerprint.Compute([]byte("A=1\n"))

	assert.NotEqual(t, a, b)
}

func TestComputeLargeInputRegime(t *testing.T) {
	t.Parallel()

	large := bytes.Repeat([]byte("X=value-that-repeats-many-times\n"), 100)
	assert.Greater(t, len(large), 512)

	a := fingerprint.Compute(large)
	b := fingerprint.Compute(bytes.Clone(large))
	assert.Equal(t, a, b)

	// Mutate a sampled offset (stride 16 starting at 0) so the large-input
	// regime is guaranteed to observe the change.
	changed := bytes.Clone(large)
	changed[0] = '!'
	c := fingerprint.Compute(changed)
	assert.NotEqual(t, a, c)
}

func TestComputeHandlesEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fingerprint.Compute(nil), fingerprint.Compute([]byte{}))
}
