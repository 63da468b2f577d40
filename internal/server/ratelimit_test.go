package server

import (
	"testing"

	"github.com/harishm17/smart-email/internal/config"
)

func TestClientLimiter(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		l := NewClientLimiter(config.RateLimitConfig{Enabled: false})
		for i := 0; i < 100; i++ {
			if !l.Allow("10.0.0.1") {
				t.Fatal("Disabled limiter rejected a request")
			}
		}
	})

	t.Run("BurstExhaustion", func(t *testing.T) {
		l := NewClientLimiter(config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			Burst:          3,
		})
		for i := 0; i < 3; i++ {
			if !l.Allow("10.0.0.1") {
				t.Fatalf("Request %d within burst rejected", i)
			}
		}
		if l.Allow("10.0.0.1") {
			t.Error("Request beyond burst allowed")
		}
	})

	t.Run("PerClientIsolation", func(t *testing.T) {
		l := NewClientLimiter(config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			Burst:          1,
		})
		if !l.Allow("10.0.0.1") {
			t.Fatal("First client's first request rejected")
		}
		if l.Allow("10.0.0.1") {
			t.Error("First client's second request allowed")
		}
		if !l.Allow("10.0.0.2") {
			t.Error("Second client throttled by first client's usage")
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		l := NewClientLimiter(config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			Burst:          1,
		})
		l.Allow("10.0.0.1")
		l.CleanupOldClients()
		// Entry was just used; it must survive cleanup.
		l.mu.Lock()
		_, exists := l.clients["10.0.0.1"]
		l.mu.Unlock()
		if !exists {
			t.Error("Recently used client entry removed")
		}
	})
}
