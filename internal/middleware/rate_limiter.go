package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fuelpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry counts requests of one client inside a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// WindowLimiter allows limit requests per key per window.
type WindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request for key. When the limit is exceeded it returns
// false and the end of the current window.
func (l *WindowLimiter) Allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// Purge drops expired entries and returns how many were removed.
func (l *WindowLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for k, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, k)
			n++
		}
	}
	return n
}

// RunPurge purges expired entries every interval until ctx is done, so clients
// that never return do not accumulate.
func (l *WindowLimiter) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Purge(); n > 0 {
				log.Debug().Int("purged", n).Msg("rate limiter entries purged")
			}
		}
	}
}

// Middleware rejects clients over the limit with 429.
func (l *WindowLimiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.Allow(c.ClientIP())
		if !ok {
			wait := int(time.Until(windowEnd).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter(l *WindowLimiter) gin.HandlerFunc {
	return l.Middleware("too many login attempts, try again in a minute")
}

// RateLimiter is the general API limiter.
func RateLimiter(l *WindowLimiter) gin.HandlerFunc {
	return l.Middleware("too many requests, try again shortly")
}
