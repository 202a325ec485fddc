package model

import "time"

// SessionRecord is the payload sealed inside an admin session token. The
// browser cookie is the only copy; the server keeps no session table.
type SessionRecord struct {
	Created      time.Time `json:"created"`
	LastActivity time.Time `json:"last_activity"`
	IP           string    `json:"ip"`
}
