package domain

import "time"

type Clock interface {
	Now() time.Time
}

// LocationClock reports wall-clock time in a fixed location.
type LocationClock struct {
	Location *time.Location
}

func NewLocationClock(loc *time.Location) *LocationClock {
	if loc == nil {
		loc = time.Local
	}
	return &LocationClock{Location: loc}
}

func (c *LocationClock) Now() time.Time {
	return time.Now().In(c.Location)
}

// FixedClock always reports the same instant. Useful in tests and replays.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
