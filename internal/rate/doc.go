// Package rate provides the Redis-backed login throttle consumed by the
// Engine. The Engine treats it as the external rate limiter and only surfaces
// the resulting error kind.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefixes:
//   - al:  login per-email
//   - ali: login per-IP
//
// # What this package must NOT do
//
//   - Decide which operations are throttled (the Engine does).
//   - Be imported outside the authcore module.
package rate
