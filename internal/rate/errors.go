package rate

import "errors"

var (
	// ErrRateLimited is returned when an identifier or IP exhausted its window.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable marks a throttle-store transport failure.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
