package repository

import "errors"

var (
	ErrRedisConnection  = errors.New("redis connection error")
	ErrInvalidStateData = errors.New("invalid state data")
)
