// Package uid provides ID generation behind small interfaces.
//
// StringID produces opaque string identifiers (UUID v7, object IDs) and
// NumberID produces sortable int64 identifiers (snowflake).
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates time-sortable numeric identifiers.
type NumberID interface {
	Generate() int64
}
