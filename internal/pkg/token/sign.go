package token

import (
	"crypto/hmac"
	"crypto/sha256"
)

// sign computes the HMAC-SHA256 of message under secret. The message is the
// byte-exact concatenation "headerSegment.payloadSegment" as transmitted, not
// decoded and re-encoded content.
func sign(message, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return mac.Sum(nil)
}

// verify reports whether candidate matches the MAC of message under secret.
// hmac.Equal compares in constant time; an early-exit comparison here would
// leak where the first differing byte is.
func verify(message, candidate, secret []byte) bool {
	return hmac.Equal(candidate, sign(message, secret))
}
