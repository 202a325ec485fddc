package services

import (
	"crypto/subtle"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/model"
	"github.com/atelier-nova/atelier_api/shared"
)

// AdminAuthService gates the single-operator admin surface. It composes the
// rate limiter, a constant-time password check against the configured secret,
// and the session codec. Every decision branch emits a structured security
// log line; that log is the only audit trail.
type AdminAuthService struct {
	context.DefaultService

	password    string
	allowlist   []string
	environment string

	rateLimitSvc *RateLimitService
	sessionSvc   *SessionService
}

const ADMIN_AUTH_SVC = "admin_auth_svc"

const maxPasswordLength = 1000

func (svc AdminAuthService) Id() string {
	return ADMIN_AUTH_SVC
}

func (svc *AdminAuthService) Configure(ctx *context.Context) error {
	svc.password = os.Getenv("ADMIN_PASSWORD")
	svc.environment = os.Getenv("APP_ENV")

	if raw := os.Getenv("ADMIN_IP_ALLOWLIST"); raw != "" {
		for _, entry := range strings.Split(raw, ",") {
			if entry = strings.TrimSpace(entry); entry != "" {
				svc.allowlist = append(svc.allowlist, entry)
			}
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *AdminAuthService) Start() error {
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.sessionSvc = svc.Service(SESSION_SVC).(*SessionService)

	if svc.password == "" {
		log.Warn("ADMIN_PASSWORD is not set; all admin logins will fail")
	}

	return nil
}

// VerifyPassword runs the full login decision: sanitize, allowlist, rate
// limit, then a constant-time comparison. It never returns an error; every
// failure mode is a structured result.
func (svc *AdminAuthService) VerifyPassword(password, ip string) dto.AdminLoginResult {
	password = sanitizePassword(password)

	if !svc.ipAllowed(ip) {
		svc.logSecurityEvent("admin_login_blocked_ip", ip, log.Fields{})
		return dto.AdminLoginResult{Success: false, Error: "Access denied"}
	}

	limit := svc.rateLimitSvc.Check(shared.AdminLoginPrefix + ip)
	if !limit.Allowed {
		svc.logSecurityEvent("admin_login_rate_limited", ip, log.Fields{
			"reset_time": limit.ResetTime,
		})
		adminLoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
		rateLimitDenialsTotal.Inc()

		zero := 0
		return dto.AdminLoginResult{
			Success:     false,
			Error:       "Too many login attempts. Please try again later.",
			RateLimited: true,
			Remaining:   &zero,
			ResetTime:   &limit.ResetTime,
		}
	}

	if svc.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(svc.password)) != 1 {
		svc.logSecurityEvent("admin_login_failed", ip, log.Fields{
			"remaining_attempts": limit.Remaining,
		})
		adminLoginAttemptsTotal.WithLabelValues("failed").Inc()

		return dto.AdminLoginResult{
			Success:   false,
			Error:     "Invalid password",
			Remaining: &limit.Remaining,
			ResetTime: &limit.ResetTime,
		}
	}

	svc.rateLimitSvc.Reset(shared.AdminLoginPrefix + ip)
	svc.logSecurityEvent("admin_login_success", ip, log.Fields{})
	adminLoginAttemptsTotal.WithLabelValues("success").Inc()

	return dto.AdminLoginResult{Success: true}
}

// EstablishSession mints a session for ip and writes the cookie. The raw
// token is returned for audit logging only; the cookie is the sole channel
// to the client.
func (svc *AdminAuthService) EstablishSession(c *fiber.Ctx, ip string) (string, error) {
	token, err := svc.sessionSvc.Create(ip)
	if err != nil {
		svc.logSecurityEvent("admin_session_create_failed", ip, log.Fields{
			"error": err.Error(),
		})
		return "", shared.NewInternalError(err, "Failed to create session")
	}

	svc.writeSessionCookie(c, token)
	svc.logSecurityEvent("admin_session_created", ip, log.Fields{})

	return token, nil
}

// CheckSession reports whether the request carries a valid admin session.
// On success the token is rotated and the cookie rewritten in place.
func (svc *AdminAuthService) CheckSession(c *fiber.Ctx) bool {
	token := c.Cookies(shared.SessionCookie)
	if token == "" {
		return false
	}

	fresh, record := svc.sessionSvc.Refresh(token)
	if record == nil {
		svc.logSecurityEvent("admin_session_invalid", shared.ClientIP(c), log.Fields{})
		return false
	}

	svc.writeSessionCookie(c, fresh)
	return true
}

// CurrentSession returns the decoded record for the request's cookie, or nil.
func (svc *AdminAuthService) CurrentSession(c *fiber.Ctx) *model.SessionRecord {
	token := c.Cookies(shared.SessionCookie)
	if token == "" {
		return nil
	}
	return svc.sessionSvc.Validate(token)
}

// ClearSession deletes the session cookie.
func (svc *AdminAuthService) ClearSession(c *fiber.Ctx) {
	hadSession := c.Cookies(shared.SessionCookie) != ""

	c.Cookie(&fiber.Cookie{
		Name:     shared.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   svc.environment == shared.EnvProduction,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	if hadSession {
		svc.logSecurityEvent("admin_logout", shared.ClientIP(c), log.Fields{})
	}
}

// RequireAdmin rejects requests without a valid admin session.
func (svc *AdminAuthService) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.CheckSession(c) {
			return shared.NewUnauthorizedError(nil, "Unauthorized")
		}
		return c.Next()
	}
}

func (svc *AdminAuthService) writeSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     shared.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(svc.sessionSvc.MaxAge().Seconds()),
		HTTPOnly: true,
		Secure:   svc.environment == shared.EnvProduction,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (svc *AdminAuthService) ipAllowed(ip string) bool {
	if svc.environment == shared.EnvDevelopment {
		return true
	}
	if len(svc.allowlist) == 0 {
		return true
	}
	for _, allowed := range svc.allowlist {
		if allowed == ip {
			return true
		}
	}
	return false
}

func (svc *AdminAuthService) logSecurityEvent(event, ip string, fields log.Fields) {
	entry := log.WithFields(log.Fields{
		"event_id": uuid.NewString(),
		"event":    event,
		"ip":       ip,
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Info("Security event")
}

func sanitizePassword(password string) string {
	password = strings.ReplaceAll(password, "<", "")
	password = strings.ReplaceAll(password, ">", "")
	password = strings.TrimSpace(password)

	// Truncation counts runes, never bytes, so a multibyte character is
	// dropped whole instead of split.
	if runes := []rune(password); len(runes) > maxPasswordLength {
		password = string(runes[:maxPasswordLength])
	}
	return password
}
