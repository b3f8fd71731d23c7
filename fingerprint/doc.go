// Package fingerprint computes a cheap, collision-tolerant digest over
// dotenv buffer text, and provides a small generic LRU keyed by that
// digest.
//
// Two regimes keep the cost proportional to how much of the buffer is
// worth reading: inputs under 512 bytes are digested by length plus a
// hash of their first 64 bytes; larger inputs are digested from
// a bounded, evenly spaced sample rather than the full buffer. Either
// digest may collide -- the worst-case consequence, documented at the
// call sites that use [Digest] as a cache key, is a stale decoration
// that the next edit corrects, never a crash or a masked secret that
// leaks.
package fingerprint
