package token

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSegmentRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("hello world"),
		{0x00},
		{0x00, 0x01, 0x02, 0xfe, 0xff},
		[]byte(`{"sub":"alice@example.com"}`),
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 100),
	}

	for _, in := range cases {
		encoded := encodeSegment(in)

		if strings.ContainsAny(encoded, "./+=") {
			t.Fatalf("encoded segment %q contains unsafe characters", encoded)
		}

		out, err := decodeSegment(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("round trip mismatch: in %v, out %v", in, out)
		}
	}
}

func TestDecodeSegmentInvalid(t *testing.T) {
	cases := map[string]string{
		"InvalidCharacterDot":   "ab.cd",
		"InvalidCharacterPlus":  "ab+cd",
		"InvalidCharacterSpace": "ab cd",
		"PaddingCharacter":      "abcd==",
		"ImpossibleLength":      "A",
	}

	for name, segment := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeSegment(segment); !errors.Is(err, ErrSegmentEncoding) {
				t.Fatalf("expected ErrSegmentEncoding, got %v", err)
			}
		})
	}
}

func TestCanonicalJSONDeterministic(t *testing.T) {
	a, err := canonicalJSON(map[string]any{"sub": "a@b.c", "exp": int64(42), "role": "admin"})
	if err != nil {
		t.Fatalf("canonicalJSON: %v", err)
	}
	b, err := canonicalJSON(map[string]any{"role": "admin", "exp": int64(42), "sub": "a@b.c"})
	if err != nil {
		t.Fatalf("canonicalJSON: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Fatalf("canonical serialization differs: %s vs %s", a, b)
	}
	if want := `{"exp":42,"role":"admin","sub":"a@b.c"}`; string(a) != want {
		t.Fatalf("canonical form = %s, want %s", a, want)
	}
}
