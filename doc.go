// Package authcore implements the session-credential lifecycle for the bbebig
// platform: issuance, rotation, validation, and revocation of paired JWT access
// and refresh tokens, with Redis as the single source of truth for the one
// currently-valid refresh token per user.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. The Engine itself is stateless between calls; all durable
// state lives in the refresh-token store.
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// the error kinds, and value types (TokenPair, LoginResult, MetricsSnapshot).
// Token signing lives in token/, the Redis slot store in session/, password
// hashing in password/, and the HTTP adapter in httpapi/. User records are
// consumed through the [UserStore] interface and never owned here.
//
// # What this package must NOT do
//
//   - Expose Redis clients or store keying details in its public API.
//   - Persist access tokens. They are stateless-valid until natural expiry,
//     and there is no server-side access-token revocation list.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//
// # Rotation contract
//
// Exactly one refresh token is valid per user. A successful Refresh replaces
// the stored value, so the presented token can never succeed again. Concurrent
// identical Refresh calls are coalesced through a single-flight group; this
// protects a single-process deployment only, since the store offers no
// compare-and-swap primitive.
package authcore
