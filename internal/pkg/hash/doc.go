// Package hash provides credential hashing behind a small interface.
//
// Two drivers exist: sha256 (plain digest, deterministic) and bcrypt
// (salted, peppered). The driver is selected from configuration at startup.
package hash
