package services

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/model"
	"github.com/atelier-nova/atelier_api/shared"
)

// RateLimitService keeps a fixed-window attempt counter per identifier. The
// map is process-local and never persisted; restarting the server clears all
// limits.
type RateLimitService struct {
	context.DefaultService

	maxAttempts int
	window      time.Duration

	apiMaxAttempts int
	apiWindow      time.Duration

	mutex   sync.Mutex
	records map[string]*model.RateLimitRecord

	now     func() time.Time
	closed  chan struct{}
	cleanup time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

const (
	defaultMaxAttempts     = 5
	defaultWindow          = 15 * time.Minute
	defaultAPIMaxAttempts  = 120
	defaultAPIWindow       = time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.maxAttempts = defaultMaxAttempts
	if v := os.Getenv("RATE_LIMIT_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			svc.maxAttempts = n
		}
	}

	svc.window = defaultWindow
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			svc.window = d
		}
	}

	svc.apiMaxAttempts = defaultAPIMaxAttempts
	if v := os.Getenv("RATE_LIMIT_API_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			svc.apiMaxAttempts = n
		}
	}

	svc.apiWindow = defaultAPIWindow
	if v := os.Getenv("RATE_LIMIT_API_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			svc.apiWindow = d
		}
	}

	svc.records = make(map[string]*model.RateLimitRecord)
	svc.now = time.Now
	svc.closed = make(chan struct{})
	svc.cleanup = defaultCleanupInterval

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	go svc.startCleanupJob()
	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.closed)
}

// NewRateLimitService builds a standalone limiter outside the service
// container, with an injectable clock.
func NewRateLimitService(maxAttempts int, window time.Duration, now func() time.Time) *RateLimitService {
	if now == nil {
		now = time.Now
	}
	return &RateLimitService{
		maxAttempts:    maxAttempts,
		window:         window,
		apiMaxAttempts: defaultAPIMaxAttempts,
		apiWindow:      defaultAPIWindow,
		records:        make(map[string]*model.RateLimitRecord),
		now:            now,
		closed:         make(chan struct{}),
		cleanup:        defaultCleanupInterval,
	}
}

// Check records one attempt for the identifier and reports whether it is
// allowed. The window is anchored at the first attempt and is never extended
// by denied calls. Total over its domain: there is no error path.
func (svc *RateLimitService) Check(identifier string) dto.RateLimitResult {
	return svc.checkLimit(identifier, svc.maxAttempts, svc.window)
}

func (svc *RateLimitService) checkLimit(identifier string, maxAttempts int, window time.Duration) dto.RateLimitResult {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()

	record, exists := svc.records[identifier]
	if !exists || now.After(record.ResetTime) {
		record = &model.RateLimitRecord{
			Attempts:  1,
			ResetTime: now.Add(window),
		}
		svc.records[identifier] = record

		return dto.RateLimitResult{
			Allowed:   true,
			Remaining: maxAttempts - 1,
			ResetTime: record.ResetTime,
		}
	}

	if record.Attempts >= maxAttempts {
		return dto.RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetTime: record.ResetTime,
		}
	}

	record.Attempts++

	return dto.RateLimitResult{
		Allowed:   true,
		Remaining: maxAttempts - record.Attempts,
		ResetTime: record.ResetTime,
	}
}

// ==================== MIDDLEWARE ====================

// APIRateLimit throttles the admin surface per client address, independently
// of the login window. Every response carries X-RateLimit-Remaining and
// X-RateLimit-Reset so the admin UI can back off before hitting the wall.
func (svc *RateLimitService) APIRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := shared.AdminAPIPrefix + shared.ClientIP(c)
		result := svc.checkLimit(identifier, svc.apiMaxAttempts, svc.apiWindow)

		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime.Unix(), 10))

		if !result.Allowed {
			rateLimitDenialsTotal.Inc()
			log.WithField("identifier", identifier).Warn("Admin API rate limit exceeded")
			return shared.NewTooManyRequestsError(nil, "Too many requests. Please try again later.")
		}

		return c.Next()
	}
}

// Reset forgets the identifier entirely, e.g. after a successful login.
func (svc *RateLimitService) Reset(identifier string) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	delete(svc.records, identifier)
}

func (svc *RateLimitService) MaxAttempts() int {
	return svc.maxAttempts
}

func (svc *RateLimitService) Window() time.Duration {
	return svc.window
}

// Stats is the admin view of the limiter's current state.
func (svc *RateLimitService) Stats() dto.RateLimitStats {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()
	active := 0
	for _, record := range svc.records {
		if now.Before(record.ResetTime) {
			active++
		}
	}

	return dto.RateLimitStats{
		MaxAttempts:   svc.maxAttempts,
		Window:        svc.window.String(),
		TrackedKeys:   len(svc.records),
		ActiveWindows: active,
		Timestamp:     now,
	}
}

// removeExpired deletes entries whose window has passed, bounding the map.
func (svc *RateLimitService) removeExpired() int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()
	removed := 0
	for identifier, record := range svc.records {
		if now.After(record.ResetTime) {
			delete(svc.records, identifier)
			removed++
		}
	}
	return removed
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(svc.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := svc.removeExpired(); removed > 0 {
				log.WithField("removed", removed).Debug("Rate limit cleanup completed")
			}
		case <-svc.closed:
			return
		}
	}
}
