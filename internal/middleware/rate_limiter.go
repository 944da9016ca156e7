package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sweepInterval = 5 * time.Minute

// ipWindow is one client's counter within its current fixed window.
type ipWindow struct {
	count int
	until time.Time
}

// ipLimiter counts requests per client IP in fixed windows. A background
// sweep drops windows for clients that went quiet so the map never grows
// unbounded.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*ipWindow
	limit   int
	window  time.Duration
	name    string
	message string
}

func newIPLimiter(name string, limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		name:    name,
		message: message,
	}
	go l.sweep()
	return l
}

// take registers one request and reports whether it is within the limit,
// together with the moment the current window resets.
func (l *ipLimiter) take(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[ip]
	if !ok || now.After(w.until) {
		w = &ipWindow{until: now.Add(l.window)}
		l.clients[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.until
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, until := l.take(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purged := 0
		for ip, w := range l.clients {
			if now.After(w.until) {
				delete(l.clients, ip)
				purged++
			}
		}
		l.mu.Unlock()
		if purged > 0 {
			log.Debug().Str("limiter", l.name).Int("purged", purged).Msg("rate limiter entries purged")
		}
	}
}

// RateLimiter caps requests per minute per client IP across the whole API.
func RateLimiter(perMinute int) gin.HandlerFunc {
	return newIPLimiter("api", perMinute, time.Minute, "too many requests, slow down").handler()
}

// LoginRateLimiter is a much tighter per-IP cap for the login endpoint,
// applied on top of the API-wide limiter.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	return newIPLimiter("login", perMinute, time.Minute, "too many login attempts, try again in a minute").handler()
}
