package model

import "time"

// RateLimitRecord tracks attempts for one identifier within the current
// window. Records live only in the limiter's in-memory map; a process
// restart clears them.
type RateLimitRecord struct {
	Attempts  int       `json:"attempts"`
	ResetTime time.Time `json:"reset_time"`
}
