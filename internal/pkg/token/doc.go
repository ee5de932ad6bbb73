// Package token implements the compact signed access token used for
// authentication.
//
// A token is three dot-joined base64url segments: header, claims payload, and
// an HMAC-SHA256 signature over the literal first two segments. Tokens are
// stateless credentials: nothing is persisted, and a token simply stops
// verifying once its expiry passes.
//
// It includes:
//   - A Codec built from an injected secret, default TTL, and clock.
//   - A typed Claims value that serializes canonically (sorted keys, compact
//     separators) so equal claims always produce byte-identical tokens.
//   - Context helpers for storing and retrieving authenticated claims.
package token
