package services

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/atelier-nova/atelier_api/shared"
)

func newTestAuthService(clock *fakeClock, password string) *AdminAuthService {
	return &AdminAuthService{
		password:     password,
		environment:  shared.EnvDevelopment,
		rateLimitSvc: NewRateLimitService(5, 15*time.Minute, clock.Now),
		sessionSvc:   NewSessionService("test-session-secret", clock.Now),
	}
}

func TestSanitizePassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hunter2", "hunter2"},
		{"angle brackets stripped", "<script>pass</script>", "scriptpass/script"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"inner whitespace kept", "two words", "two words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePassword(tt.in); got != tt.want {
				t.Errorf("sanitizePassword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizePasswordCapsLength(t *testing.T) {
	long := make([]byte, 2*maxPasswordLength)
	for i := range long {
		long[i] = 'a'
	}

	if got := sanitizePassword(string(long)); len(got) != maxPasswordLength {
		t.Errorf("len = %d, want %d", len(got), maxPasswordLength)
	}
}

func TestSanitizePasswordTruncatesWholeRunes(t *testing.T) {
	long := strings.Repeat("é", maxPasswordLength+5)

	got := sanitizePassword(long)
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a multibyte character")
	}
	if n := utf8.RuneCountInString(got); n != maxPasswordLength {
		t.Errorf("rune count = %d, want %d", n, maxPasswordLength)
	}
}

func TestVerifyPasswordSuccess(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")

	result := svc.VerifyPassword("correct-horse", "203.0.113.7")
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.RateLimited || result.Error != "" {
		t.Errorf("success result carries failure fields: %+v", result)
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")

	result := svc.VerifyPassword("wrong", "203.0.113.7")
	if result.Success {
		t.Fatal("wrong password accepted")
	}
	if result.Error != "Invalid password" {
		t.Errorf("error = %q", result.Error)
	}
	if result.Remaining == nil || *result.Remaining != 4 {
		t.Errorf("remaining = %v, want 4", result.Remaining)
	}
	if result.ResetTime == nil {
		t.Error("failure result should carry the window reset time")
	}
}

func TestVerifyPasswordEmptyConfigured(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "")

	// With no configured password every attempt fails, including the empty
	// string.
	if result := svc.VerifyPassword("", "203.0.113.7"); result.Success {
		t.Fatal("login succeeded with unset admin password")
	}
}

func TestVerifyPasswordRateLimits(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")

	for i := 0; i < 5; i++ {
		result := svc.VerifyPassword("wrong", "203.0.113.7")
		if result.RateLimited {
			t.Fatalf("attempt %d rate limited too early", i+1)
		}
		wantRemaining := 5 - (i + 1)
		if result.Remaining == nil || *result.Remaining != wantRemaining {
			t.Errorf("attempt %d: remaining = %v, want %d", i+1, result.Remaining, wantRemaining)
		}
	}

	result := svc.VerifyPassword("wrong", "203.0.113.7")
	if !result.RateLimited {
		t.Fatal("sixth attempt should be rate limited")
	}
	if result.Remaining == nil || *result.Remaining != 0 {
		t.Errorf("rate-limited remaining = %v, want 0", result.Remaining)
	}

	// Even the correct password is refused while the window holds.
	if result := svc.VerifyPassword("correct-horse", "203.0.113.7"); result.Success {
		t.Error("correct password accepted while rate limited")
	}
}

func TestVerifyPasswordRateLimitIsPerIP(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")

	for i := 0; i < 6; i++ {
		svc.VerifyPassword("wrong", "198.51.100.1")
	}

	if result := svc.VerifyPassword("correct-horse", "203.0.113.7"); !result.Success {
		t.Errorf("a different ip should be unaffected, got %+v", result)
	}
}

func TestVerifyPasswordSuccessResetsLimiter(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")

	for i := 0; i < 4; i++ {
		svc.VerifyPassword("wrong", "203.0.113.7")
	}
	if result := svc.VerifyPassword("correct-horse", "203.0.113.7"); !result.Success {
		t.Fatalf("expected success on fifth attempt, got %+v", result)
	}

	// The window was cleared, so the next failure starts a fresh count.
	result := svc.VerifyPassword("wrong", "203.0.113.7")
	if result.Remaining == nil || *result.Remaining != 4 {
		t.Errorf("remaining after reset = %v, want 4", result.Remaining)
	}
}

func TestIPAllowlist(t *testing.T) {
	clock := newFakeClock()

	tests := []struct {
		name        string
		environment string
		allowlist   []string
		ip          string
		want        bool
	}{
		{"development bypasses allowlist", shared.EnvDevelopment, []string{"10.0.0.1"}, "203.0.113.7", true},
		{"empty allowlist admits all", shared.EnvProduction, nil, "203.0.113.7", true},
		{"listed ip admitted", shared.EnvProduction, []string{"203.0.113.7"}, "203.0.113.7", true},
		{"unlisted ip blocked", shared.EnvProduction, []string{"10.0.0.1"}, "203.0.113.7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(clock, "correct-horse")
			svc.environment = tt.environment
			svc.allowlist = tt.allowlist

			if got := svc.ipAllowed(tt.ip); got != tt.want {
				t.Errorf("ipAllowed(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestVerifyPasswordBlockedIP(t *testing.T) {
	svc := newTestAuthService(newFakeClock(), "correct-horse")
	svc.environment = shared.EnvProduction
	svc.allowlist = []string{"10.0.0.1"}

	result := svc.VerifyPassword("correct-horse", "203.0.113.7")
	if result.Success {
		t.Fatal("blocked ip logged in")
	}
	if result.Error != "Access denied" {
		t.Errorf("error = %q", result.Error)
	}
	if result.RateLimited {
		t.Error("ip block is not a rate-limit denial")
	}
}
