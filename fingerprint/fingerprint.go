package fingerprint

import "github.com/cespare/xxhash/v2"

const (
	// smallInputBound is the length below which a buffer is digested by
	// its length plus a hash of its first smallPrefixBytes bytes.
	smallInputBound = 512
	smallPrefixBytes = 64

	// sampleStride and sampleCap bound the large-input regime's cost:
	// one byte read every sampleStride bytes, capped at sampleCap
	// samples regardless of input size.
	sampleStride = 16
	sampleCap    = 512
)

// Digest is a cheap, comparable fingerprint of a byte slice, suitable as
// a map key for [go.envmask.dev/core/fingerprint.LRU] or equivalent
// caches. Equal digests are assumed (not guaranteed) to mean equal
// content -- see the package doc for the collision trade-off.
type Digest struct {
	length int
	hash   uint64
}

// WithSalt returns a derived digest that folds extra into d's hash,
// leaving d itself unchanged. It lets a cache key on content plus a small
// amount of auxiliary call state -- e.g. parse options -- without having
// to hash that state into the sampled content bytes themselves.
func (d Digest) WithSalt(extra uint64) Digest {
	const fnvPrime = 1099511628211

	return Digest{length: d.length, hash: d.hash*fnvPrime ^ extra}
}

// Compute returns input's fingerprint. Inputs shorter than 512 bytes are
// hashed over their first 64 bytes (or fewer, if shorter still); longer
// inputs are hashed over a stride-16 sample capped at 512 samples, so the
// cost of fingerprinting a large buffer does not grow with its size.
func Compute(input []byte) Digest {
	if len(input) < smallInputBound {
		n := len(input)
		if n > smallPrefixBytes {
			n = smallPrefixBytes
		}

		return Digest{length: len(input), hash: xxhash.Sum64(input[:n])}
	}

	h := xxhash.New()

	samples := 0
	for i := 0; i < len(input) && samples < sampleCap; i += sampleStride {
		_, _ = h.Write(input[i : i+1])
		samples++
	}

	return Digest{length: len(input), hash: h.Sum64()}
}
