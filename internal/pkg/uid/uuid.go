package uid

import "github.com/google/uuid"

// UUID generates UUID strings, used for correlation ids.
type UUID struct {
	next func() (uuid.UUID, error)
}

// NewUUID returns a generator of time-ordered (version 7) UUIDs.
func NewUUID() *UUID {
	return &UUID{next: uuid.NewV7}
}

// NewRandomUUID returns a generator of random (version 4) UUIDs.
func NewRandomUUID() *UUID {
	return &UUID{next: uuid.NewRandom}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := u.next()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
