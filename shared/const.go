package shared

const (
	// SessionCookie is the cookie carrying the encrypted admin session token.
	SessionCookie = "admin-session"

	// AdminLoginPrefix namespaces login attempts inside the rate limiter.
	AdminLoginPrefix = "admin_login_"

	// AdminAPIPrefix namespaces authenticated admin traffic inside the
	// rate limiter, separate from the login window.
	AdminAPIPrefix = "admin_api_"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)
