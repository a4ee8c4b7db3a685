package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidCafeID       = errors.New("MENU_CAFE_ID must be a positive integer")
	ErrInvalidTimezone     = errors.New("MENU_TIMEZONE must be an IANA location name")
	ErrInvalidStateBackend = errors.New("STATE_BACKEND must be file or redis")
	ErrStateFileMissing    = errors.New("STATE_FILE is required for the file backend")
)
