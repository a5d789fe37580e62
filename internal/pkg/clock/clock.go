package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// System reads the wall clock, optionally converted to a fixed location.
type System struct {
	loc *time.Location
}

// New returns a System clock in the process local time zone.
func New() *System {
	return &System{}
}

// NewIn returns a System clock whose readings are expressed in loc.
func NewIn(loc *time.Location) *System {
	return &System{loc: loc}
}

// Now returns the current time.
func (s *System) Now() time.Time {
	if s.loc == nil {
		return time.Now()
	}
	return time.Now().In(s.loc)
}

// Fixed is a Clocker that always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
