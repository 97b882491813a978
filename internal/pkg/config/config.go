package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
//
// Implementations resolve a key from (highest first) environment variables, the
// config file, then built-in defaults, and return the zero value for unknown keys.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray retrieves the value associated with key as a slice of strings.
	// Values are stored as <element1>,<element2>,... ; blank elements are dropped.
	GetArray(key string) []string
}
