package domain

import "errors"

var (
	ErrFetch       = errors.New("menu fetch failed")
	ErrParse       = errors.New("menu payload malformed")
	ErrPublish     = errors.New("post publish failed")
	ErrPersistence = errors.New("last meal persistence failed")

	ErrCafeNotFound     = errors.New("cafe not found in menu")
	ErrNoDayParts       = errors.New("cafe has no dayparts")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)
