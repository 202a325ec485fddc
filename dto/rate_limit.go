package dto

import "time"

// RateLimitResult is the answer to a single limiter check.
type RateLimitResult struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
}

// RateLimitStats is the admin view of the limiter's in-memory state.
type RateLimitStats struct {
	MaxAttempts   int       `json:"max_attempts"`
	Window        string    `json:"window"`
	TrackedKeys   int       `json:"tracked_keys"`
	ActiveWindows int       `json:"active_windows"`
	Timestamp     time.Time `json:"timestamp"`
}
