// Package config abstracts configuration access behind typed getters.
//
// Implementations own parsing and conversion; callers ask for the type they
// need and get a zero value when the key is missing or malformed.
package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key.
type Config interface {
	io.Closer

	// GetSecond reads an integer key and returns it as seconds.
	GetSecond(key string) time.Duration

	// GetMinute reads an integer key and returns it as minutes.
	GetMinute(key string) time.Duration

	// GetHour reads an integer key and returns it as hours.
	GetHour(key string) time.Duration

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16, typically a port.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the value for key split on commas.
	GetArray(key string) []string

	// GetMap returns the value for key parsed from "k1:v1,k2:v2" pairs.
	GetMap(key string) map[string]string
}
