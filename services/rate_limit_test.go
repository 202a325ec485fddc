package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// fakeClock lets tests drive the limiter's and codec's view of time.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestRateLimitMonotonicity(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(5, 15*time.Minute, clock.Now)

	for i := 0; i < 5; i++ {
		result := svc.Check("attacker")
		if !result.Allowed {
			t.Fatalf("call %d: expected allowed, got denied", i+1)
		}
		wantRemaining := 5 - (i + 1)
		if result.Remaining != wantRemaining {
			t.Errorf("call %d: remaining = %d, want %d", i+1, result.Remaining, wantRemaining)
		}
	}

	for i := 0; i < 3; i++ {
		result := svc.Check("attacker")
		if result.Allowed {
			t.Fatalf("exhausted call %d: expected denied", i+1)
		}
		if result.Remaining != 0 {
			t.Errorf("exhausted call %d: remaining = %d, want 0", i+1, result.Remaining)
		}
	}
}

func TestRateLimitWindowNotExtendedOnDenial(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(2, 15*time.Minute, clock.Now)

	first := svc.Check("key")
	svc.Check("key")

	clock.Advance(5 * time.Minute)
	denied := svc.Check("key")

	if denied.Allowed {
		t.Fatal("expected denial after exhausting attempts")
	}
	if !denied.ResetTime.Equal(first.ResetTime) {
		t.Errorf("denial moved reset time from %v to %v", first.ResetTime, denied.ResetTime)
	}
}

func TestRateLimitWindowReset(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(3, 15*time.Minute, clock.Now)

	for i := 0; i < 4; i++ {
		svc.Check("key")
	}
	if result := svc.Check("key"); result.Allowed {
		t.Fatal("expected exhaustion before window elapses")
	}

	clock.Advance(15*time.Minute + time.Second)

	result := svc.Check("key")
	if !result.Allowed {
		t.Fatal("expected fresh window after reset time passed")
	}
	if result.Remaining != 2 {
		t.Errorf("remaining after reset = %d, want 2", result.Remaining)
	}
	if !result.ResetTime.Equal(clock.Now().Add(15 * time.Minute)) {
		t.Errorf("reset time = %v, want %v", result.ResetTime, clock.Now().Add(15*time.Minute))
	}
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(2, 15*time.Minute, clock.Now)

	svc.Check("a")
	svc.Check("a")
	svc.Check("a")

	if result := svc.Check("b"); !result.Allowed {
		t.Error("exhausting key a should not affect key b")
	}
}

func TestRateLimitReset(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(2, 15*time.Minute, clock.Now)

	svc.Check("key")
	svc.Check("key")
	if result := svc.Check("key"); result.Allowed {
		t.Fatal("expected exhaustion")
	}

	svc.Reset("key")

	result := svc.Check("key")
	if !result.Allowed || result.Remaining != 1 {
		t.Errorf("after reset: allowed=%v remaining=%d, want allowed with remaining 1", result.Allowed, result.Remaining)
	}
}

func TestRateLimitCleanupRemovesExpired(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(5, 15*time.Minute, clock.Now)

	for i := 0; i < 10; i++ {
		svc.Check(fmt.Sprintf("key-%d", i))
	}

	clock.Advance(16 * time.Minute)
	svc.Check("fresh")

	if removed := svc.removeExpired(); removed != 10 {
		t.Errorf("removed = %d, want 10", removed)
	}

	stats := svc.Stats()
	if stats.TrackedKeys != 1 {
		t.Errorf("tracked keys after cleanup = %d, want 1", stats.TrackedKeys)
	}
}

func TestAPIRateLimitMiddleware(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(5, 15*time.Minute, clock.Now)
	svc.apiMaxAttempts = 3
	svc.apiWindow = time.Minute

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(svc.APIRateLimit())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	wantReset := strconv.FormatInt(clock.Now().Add(time.Minute).Unix(), 10)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, resp.StatusCode)
		}

		wantRemaining := strconv.Itoa(3 - (i + 1))
		if got := resp.Header.Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Errorf("request %d: X-RateLimit-Remaining = %q, want %q", i+1, got, wantRemaining)
		}
		if got := resp.Header.Get("X-RateLimit-Reset"); got != wantReset {
			t.Errorf("request %d: X-RateLimit-Reset = %q, want %q", i+1, got, wantReset)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("exhausted request: status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("exhausted request: X-RateLimit-Remaining = %q, want 0", got)
	}

	// A fresh window admits requests again.
	clock.Advance(time.Minute + time.Second)
	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("post-window request: status = %d", resp.StatusCode)
	}
}

func TestAPIRateLimitDoesNotTouchLoginWindow(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(5, 15*time.Minute, clock.Now)
	svc.apiMaxAttempts = 1
	svc.apiWindow = time.Minute

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(svc.APIRateLimit())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Exhaust the API window for this address.
	for i := 0; i < 2; i++ {
		if _, err := app.Test(httptest.NewRequest("GET", "/", nil)); err != nil {
			t.Fatal(err)
		}
	}

	// The login window for the same address is untouched.
	if result := svc.Check("admin_login_0.0.0.0"); !result.Allowed || result.Remaining != 4 {
		t.Errorf("login window disturbed: %+v", result)
	}
}

func TestRateLimitStats(t *testing.T) {
	clock := newFakeClock()
	svc := NewRateLimitService(5, 15*time.Minute, clock.Now)

	svc.Check("a")
	svc.Check("b")

	stats := svc.Stats()
	if stats.MaxAttempts != 5 {
		t.Errorf("max attempts = %d, want 5", stats.MaxAttempts)
	}
	if stats.TrackedKeys != 2 || stats.ActiveWindows != 2 {
		t.Errorf("tracked=%d active=%d, want 2/2", stats.TrackedKeys, stats.ActiveWindows)
	}
}
