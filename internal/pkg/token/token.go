package token

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Algorithm is the only signing algorithm this codec speaks.
	Algorithm = "HS256"
	// TokenType is the typ value stamped into every header.
	TokenType = "JWT"

	// DefaultTTL applies when the configuration does not set one.
	DefaultTTL = 24 * time.Hour

	minSecretLen = 32
	segmentCount = 3
)

var (
	// ErrSecretTooShort is returned when the signing secret is under 32 bytes.
	ErrSecretTooShort = errors.New("signing secret must be at least 32 bytes (256 bits)")

	// ErrMalformedToken is returned when a token does not split into exactly
	// three non-empty segments.
	ErrMalformedToken = errors.New("token structure invalid")

	// ErrSegmentEncoding is returned when a segment contains characters outside
	// the url-safe alphabet or has an impossible length.
	ErrSegmentEncoding = errors.New("token segment encoding invalid")

	// ErrInvalidSignature is returned when the recomputed MAC does not match
	// the transmitted one. Corruption and forgery are deliberately
	// indistinguishable here.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrInvalidPayload is returned when the payload segment does not decode
	// into well-formed claims.
	ErrInvalidPayload = errors.New("token payload invalid")

	// ErrTokenExpired is returned for a structurally and cryptographically
	// valid token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

type clocker interface {
	Now() time.Time
}

// Config defines the inputs for building a Codec.
type Config struct {
	// Secret is the HMAC signing key, shared by mint and verify.
	Secret []byte
	// TTL is the default token lifetime. Zero means DefaultTTL.
	TTL time.Duration
	// Clock provides the current time source.
	Clock clocker
}

// Codec mints and parses signed access tokens.
//
// It holds no mutable state beyond the read-only secret, performs no I/O, and
// is safe for concurrent use.
type Codec struct {
	secret        []byte
	ttl           time.Duration
	clock         clocker
	headerSegment string
}

// New constructs a Codec from the given configuration.
func New(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	headerJSON, err := canonicalJSON(map[string]any{"alg": Algorithm, "typ": TokenType})
	if err != nil {
		return nil, err
	}

	return &Codec{
		secret:        cfg.Secret,
		ttl:           ttl,
		clock:         cfg.Clock,
		headerSegment: encodeSegment(headerJSON),
	}, nil
}

// Generate mints a token for the subject using the default TTL.
func (c *Codec) Generate(subject string) (string, error) {
	return c.GenerateWithTTL(subject, c.ttl)
}

// GenerateWithTTL mints a token for the subject expiring after ttl.
func (c *Codec) GenerateWithTTL(subject string, ttl time.Duration) (string, error) {
	return c.GenerateClaims(Claims{
		Subject:   subject,
		ExpiresAt: c.clock.Now().Add(ttl).Unix(),
	})
}

// GenerateClaims mints a token carrying the claims exactly as given. A zero
// ExpiresAt produces a token that never expires.
func (c *Codec) GenerateClaims(clm Claims) (string, error) {
	payloadJSON, err := canonicalJSON(clm.canonical())
	if err != nil {
		return "", fmt.Errorf("serialize claims: %w", err)
	}

	signing := c.headerSegment + "." + encodeSegment(payloadJSON)
	mac := sign([]byte(signing), c.secret)

	return signing + "." + encodeSegment(mac), nil
}

// Parse validates a token string and returns its claims.
//
// The checks run in a fixed order, each a possible terminal failure: segment
// split, signature verification, payload decoding, expiry. The signature is
// verified before the payload is decoded so nothing from an unverified payload
// ever influences control flow.
func (c *Codec) Parse(tokenStr string) (Claims, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != segmentCount || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Claims{}, ErrMalformedToken
	}

	mac, err := decodeSegment(parts[2])
	if err != nil {
		return Claims{}, err
	}

	signing := parts[0] + "." + parts[1]
	if !verify([]byte(signing), mac, c.secret) {
		return Claims{}, ErrInvalidSignature
	}

	payloadJSON, err := decodeSegment(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var payload map[string]any
	if err := decodeJSON(payloadJSON, &payload); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	clm, err := claimsFromMap(payload)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if clm.ExpiresAt != 0 && c.clock.Now().Unix() > clm.ExpiresAt {
		return Claims{}, ErrTokenExpired
	}

	return clm, nil
}
