// Package token implements the credential codec: minting and verifying the
// signed JWTs used as access and refresh credentials.
//
// Both kinds share one HS256 signing secret and one claim shape,
// {sub, knd, iat, exp, jti}, and differ only in the "knd" claim and their
// lifetime. The codec is a pure function over the secret: it holds no state,
// performs no I/O, and reads the clock exclusively through the injected Now
// func so tests can drive expiry deterministically.
//
// Every minted token carries a random UUID jti, which guarantees two tokens
// minted for the same subject within the same second are still distinct
// strings. Rotation depends on that distinctness: the session engine compares
// refresh tokens by exact value.
//
// # What this package must NOT do
//
//   - Touch Redis or any store; statelessness is the contract.
//   - Accept a token of one kind where the other is expected.
package token
