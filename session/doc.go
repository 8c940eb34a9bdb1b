// Package session implements the single-slot refresh-token store: one Redis
// key per user, holding the currently-valid refresh token verbatim, with a
// per-key TTL mirroring the token's lifetime.
//
// # Slot semantics
//
// Put is an unconditional overwrite (last writer wins) and is the
// authoritative rotation operation. Delete is idempotent: removing an absent
// slot is not an error. Presence of a slot is necessary but not sufficient for
// a refresh token to be accepted; the engine additionally requires the
// presented value to equal the stored one.
//
// There is no compare-and-swap primitive in this contract. Serializing
// concurrent rotations is the engine's job.
//
// # Failure mapping
//
// Every call runs under a bounded operation timeout. Transport failures and
// timeouts wrap [ErrUnavailable] and are retryable infrastructure errors,
// never auth decisions. A missing slot is [ErrNotFound].
//
// # What this package must NOT do
//
//   - Inspect, decode, or validate token contents; values are opaque here.
//   - Keep per-user indexes or counters; the slot is the whole data model.
package session
