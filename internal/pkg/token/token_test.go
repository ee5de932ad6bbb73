package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newCodec(t *testing.T, at time.Time) *Codec {
	t.Helper()

	c, err := New(Config{Secret: testSecret, Clock: fixedClock{now: at}})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Run("SecretTooShort", func(t *testing.T) {
		if _, err := New(Config{Secret: []byte("short"), Clock: fixedClock{}}); !errors.Is(err, ErrSecretTooShort) {
			t.Fatalf("expected ErrSecretTooShort, got %v", err)
		}
	})

	t.Run("DefaultTTL", func(t *testing.T) {
		now := time.Unix(1_700_000_000, 0)
		c := newCodec(t, now)

		tok, err := c.Generate("alice@example.com")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		clm, err := c.Parse(tok)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if want := now.Add(DefaultTTL).Unix(); clm.ExpiresAt != want {
			t.Fatalf("exp = %d, want %d", clm.ExpiresAt, want)
		}
	})
}

func TestGenerateParseRoundTrip(t *testing.T) {
	// Arrange
	now := time.Unix(1_700_000_000, 0)
	c := newCodec(t, now)

	// Act
	tok, err := c.GenerateWithTTL("alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	clm, err := c.Parse(tok)

	// Assert
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if clm.Subject != "alice@example.com" {
		t.Fatalf("sub = %q, want alice@example.com", clm.Subject)
	}
	if want := now.Add(time.Hour).Unix(); clm.ExpiresAt != want {
		t.Fatalf("exp = %d, want %d", clm.ExpiresAt, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newCodec(t, now)

	first, err := c.GenerateWithTTL("bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := c.GenerateWithTTL("bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if first != second {
		t.Fatalf("same claims at the same instant produced different tokens:\n%s\n%s", first, second)
	}
}

func TestParseMalformed(t *testing.T) {
	c := newCodec(t, time.Unix(1_700_000_000, 0))

	cases := map[string]string{
		"Empty":          "",
		"TwoSegments":    "a.b",
		"FourSegments":   "a.b.c.d",
		"EmptyHeader":    ".b.c",
		"EmptyPayload":   "a..c",
		"EmptySignature": "a.b.",
	}

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Parse(tok); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

// flipChar replaces the character at index i with a different in-alphabet one,
// so the token stays decodable and only the signature check can catch it.
func flipChar(s string, i int) string {
	replacement := byte('A')
	if s[i] == 'A' {
		replacement = 'B'
	}
	return s[:i] + string(replacement) + s[i+1:]
}

func TestParseTampered(t *testing.T) {
	c := newCodec(t, time.Unix(1_700_000_000, 0))

	tok, err := c.GenerateWithTTL("alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parts := strings.Split(tok, ".")

	t.Run("HeaderFlipped", func(t *testing.T) {
		tampered := flipChar(parts[0], 1) + "." + parts[1] + "." + parts[2]
		if _, err := c.Parse(tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("PayloadFlipped", func(t *testing.T) {
		tampered := parts[0] + "." + flipChar(parts[1], 1) + "." + parts[2]
		if _, err := c.Parse(tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("SignatureFlipped", func(t *testing.T) {
		tampered := parts[0] + "." + parts[1] + "." + flipChar(parts[2], 1)
		if _, err := c.Parse(tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("LastCharacterFlipped", func(t *testing.T) {
		// A flip in the final character lands either on the MAC bytes or on
		// the trailing padding bits; the first fails verification, the second
		// fails strict decoding. Both are rejections, never silent success.
		tampered := flipChar(tok, len(tok)-1)
		_, err := c.Parse(tampered)
		if !errors.Is(err, ErrInvalidSignature) && !errors.Is(err, ErrSegmentEncoding) {
			t.Fatalf("expected a signature or encoding failure, got %v", err)
		}
	})

	t.Run("SignatureNotInAlphabet", func(t *testing.T) {
		tampered := parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-1] + "!"
		if _, err := c.Parse(tampered); !errors.Is(err, ErrSegmentEncoding) {
			t.Fatalf("expected ErrSegmentEncoding, got %v", err)
		}
	})
}

func TestParseWrongSecret(t *testing.T) {
	minted := newCodec(t, time.Unix(1_700_000_000, 0))

	other, err := New(Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		Clock:  fixedClock{now: time.Unix(1_700_000_000, 0)},
	})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	tok, err := minted.Generate("alice@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseExpiry(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)

	t.Run("AlreadyExpired", func(t *testing.T) {
		c := newCodec(t, start)

		tok, err := c.GenerateWithTTL("alice@example.com", -time.Second)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if _, err := c.Parse(tok); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Scenario", func(t *testing.T) {
		// Mint at t0 with a one hour TTL, then parse at later instants.
		tok, err := newCodec(t, start).GenerateWithTTL("alice@example.com", time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		clm, err := newCodec(t, start.Add(30*time.Minute)).Parse(tok)
		if err != nil {
			t.Fatalf("parse halfway through lifetime: %v", err)
		}
		if clm.Subject != "alice@example.com" {
			t.Fatalf("sub = %q, want alice@example.com", clm.Subject)
		}

		if _, err := newCodec(t, start.Add(time.Hour+time.Second)).Parse(tok); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired one second past expiry, got %v", err)
		}
	})

	t.Run("ExactExpirySecondStillValid", func(t *testing.T) {
		// Rejection requires now strictly greater than exp.
		tok, err := newCodec(t, start).GenerateWithTTL("alice@example.com", time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if _, err := newCodec(t, start.Add(time.Hour)).Parse(tok); err != nil {
			t.Fatalf("parse at the expiry second: %v", err)
		}
	})

	t.Run("NoExpiryNeverExpires", func(t *testing.T) {
		tok, err := newCodec(t, start).GenerateClaims(Claims{Subject: "alice@example.com"})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		clm, err := newCodec(t, start.Add(24*365*time.Hour)).Parse(tok)
		if err != nil {
			t.Fatalf("parse far in the future: %v", err)
		}
		if clm.ExpiresAt != 0 {
			t.Fatalf("exp = %d, want 0", clm.ExpiresAt)
		}
	})
}

func TestParseInvalidPayload(t *testing.T) {
	c := newCodec(t, time.Unix(1_700_000_000, 0))

	// Build tokens whose signature is valid but whose payload is garbage, to
	// prove payload decoding happens after signature verification passes.
	forge := func(payload []byte) string {
		signing := c.headerSegment + "." + encodeSegment(payload)
		return signing + "." + encodeSegment(sign([]byte(signing), testSecret))
	}

	cases := map[string][]byte{
		"NotJSON":       []byte("not json at all"),
		"JSONArray":     []byte(`[1,2,3]`),
		"SubNotString":  []byte(`{"exp":99999999999,"sub":42}`),
		"ExpNotNumber":  []byte(`{"exp":"soon","sub":"alice@example.com"}`),
		"ExpFractional": []byte(`{"exp":17.5,"sub":"alice@example.com"}`),
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Parse(forge(payload)); !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}

	t.Run("UnsignedGarbageFailsSignatureFirst", func(t *testing.T) {
		// Same garbage payload but an invalid signature: the signature error
		// must win, proving nothing inspects an unverified payload.
		signing := c.headerSegment + "." + encodeSegment([]byte("not json at all"))
		tok := signing + "." + encodeSegment(sign([]byte("something else"), testSecret))

		if _, err := c.Parse(tok); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})
}

func TestExtraClaimsRoundTrip(t *testing.T) {
	c := newCodec(t, time.Unix(1_700_000_000, 0))

	tok, err := c.GenerateClaims(Claims{
		Subject:   "alice@example.com",
		ExpiresAt: 1_700_003_600,
		Extra:     map[string]any{"role": "admin", "tier": "gold"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	clm, err := c.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if clm.Extra["role"] != "admin" || clm.Extra["tier"] != "gold" {
		t.Fatalf("extra claims = %v, want role=admin tier=gold", clm.Extra)
	}
}
