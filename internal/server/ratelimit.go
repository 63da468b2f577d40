package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/harishm17/smart-email/internal/config"
)

// ClientLimiter applies a per-client token bucket rate limit.
type ClientLimiter struct {
	config  config.RateLimitConfig
	mu      sync.Mutex
	clients map[string]*clientEntry
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a limiter from configuration.
func NewClientLimiter(cfg config.RateLimitConfig) *ClientLimiter {
	return &ClientLimiter{
		config:  cfg,
		clients: make(map[string]*clientEntry),
	}
}

// Allow checks if a request from the given client IP is allowed
func (l *ClientLimiter) Allow(clientIP string) bool {
	if !l.config.Enabled {
		return true
	}

	l.mu.Lock()
	entry, exists := l.clients[clientIP]
	if !exists {
		entry = &clientEntry{
			limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerMin)/60, l.config.Burst),
		}
		l.clients[clientIP] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.limiter.Allow()
}

// CleanupOldClients removes entries idle for over an hour to bound memory.
func (l *ClientLimiter) CleanupOldClients() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	for ip, entry := range l.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// StartCleanupRoutine starts a background routine to clean up idle clients
func (l *ClientLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			l.CleanupOldClients()
		}
	}()
}
