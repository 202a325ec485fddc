package dto

import "time"

// ==================== ADMIN AUTH REQUEST DTOs ====================

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required,max=1000"`
}

func (r AdminLoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== ADMIN AUTH RESPONSE DTOs ====================

// AdminLoginResult is the outcome of a password check. Exactly one of
// Success / RateLimited / plain failure applies; Remaining and ResetTime are
// telemetry for the login form's countdown.
type AdminLoginResult struct {
	Success     bool       `json:"success"`
	Error       string     `json:"error,omitempty"`
	RateLimited bool       `json:"rateLimited,omitempty"`
	Remaining   *int       `json:"remainingAttempts,omitempty"`
	ResetTime   *time.Time `json:"resetTime,omitempty"`
}

type AdminSessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Created       *time.Time `json:"created,omitempty"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
}
