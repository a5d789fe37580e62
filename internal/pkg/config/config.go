package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key, e.g. "database.url".
//
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64

	// GetSecond returns an integer value as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMillisecond returns an integer value as a number of milliseconds.
	GetMillisecond(key string) time.Duration

	// GetArray returns a list value. A plain string is split on commas.
	GetArray(key string) []string
}
