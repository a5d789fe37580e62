// Package uid generates identifiers for entities and requests.
package uid

// NumberID generates unique, roughly time-ordered positive integer ids.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string ids.
type StringID interface {
	Generate() string
}
