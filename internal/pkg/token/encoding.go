package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// encodeSegment encodes raw bytes into the unpadded URL-safe alphabet used by
// every token segment. The output never contains '.', '/', '+', or '='.
func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// decodeSegment is the exact inverse of encodeSegment. The alphabet is checked
// up front so hostile input fails with ErrSegmentEncoding instead of leaking a
// library error; padding is derived from the input length by the codec.
func decodeSegment(segment string) ([]byte, error) {
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		valid := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_'
		if !valid {
			return nil, fmt.Errorf("%w: invalid character %q", ErrSegmentEncoding, c)
		}
	}

	// Strict mode rejects non-zero trailing padding bits, so two textually
	// different segments can never decode to the same bytes.
	data, err := base64.RawURLEncoding.Strict().DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentEncoding, err)
	}

	return data, nil
}

// canonicalJSON serializes v through a key-sorted map with compact separators.
// The signature is computed over these bytes, so the same claims must always
// serialize identically regardless of field ordering or whitespace.
func canonicalJSON(v map[string]any) ([]byte, error) {
	// encoding/json already sorts map keys and emits no insignificant
	// whitespace; json.Marshal on a map is the canonical form.
	return json.Marshal(v)
}

func decodeJSON(data []byte, dst *map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	return nil
}
