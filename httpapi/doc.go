// Package httpapi is the transport adapter over the authcore Engine: it maps
// inbound requests and the refresh_token cookie to Engine calls, and Engine
// error kinds to HTTP statuses, in exactly one place.
//
// # Wire contract
//
// Responses use the JSON envelope {code, message, result?}. The refresh
// credential rides in an HTTP-only refresh_token cookie (path /, 7-day
// expiry) for browser clients; mobile clients receive it in the response body
// instead. Both route variants call the identical Engine operations; the
// split never forks engine logic.
//
// Store-unavailability is retried once with a short backoff before surfacing
// a 500; it is an infrastructure failure, not an auth decision, so it never
// maps to 401.
//
// # What this package must NOT do
//
//   - Interpret token contents beyond what the Engine hands back.
//   - Branch on sentinel errors one by one; all mapping goes through
//     authcore.KindOf.
package httpapi
