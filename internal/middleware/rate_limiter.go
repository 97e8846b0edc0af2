package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/HostingCuenca/vet-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// window counts one client's requests until end.
type window struct {
	count int
	end   time.Time
}

// clientLimiter is a fixed-window counter keyed by client IP. Front-desk
// terminals share few IPs, so the limit is generous and only stops runaway
// clients (a stuck retry loop on a register, a scripted import).
type clientLimiter struct {
	limit   int
	period  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*window
}

func newClientLimiter(limit int, period time.Duration) *clientLimiter {
	return &clientLimiter{limit: limit, period: period, now: time.Now, clients: make(map[string]*window)}
}

// allow records one request and returns the requests left in the window and,
// when refused, how long until the window resets.
func (l *clientLimiter) allow(ip string) (remaining int, retryAfter time.Duration, ok bool) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.clients[ip]
	if !exists || now.After(w.end) {
		w = &window{end: now.Add(l.period)}
		l.clients[ip] = w
	}
	w.count++
	if w.count > l.limit {
		return 0, w.end.Sub(now), false
	}
	return l.limit - w.count, 0, true
}

// purge drops windows that ended before now.
func (l *clientLimiter) purge() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, w := range l.clients {
		if now.After(w.end) {
			delete(l.clients, ip)
			purged++
		}
	}
	return purged
}

// RateLimiter allows limit requests per period per client IP. /health is
// exempt so probes never eat into a register's budget.
func RateLimiter(limit int, period time.Duration) gin.HandlerFunc {
	l := newClientLimiter(limit, period)
	go func() {
		ticker := time.NewTicker(5 * period)
		defer ticker.Stop()
		for range ticker.C {
			if n := l.purge(); n > 0 {
				log.Debug().Int("purged", n).Msg("rate limiter: expired client windows removed")
			}
		}
	}()
	return rateLimit(l)
}

func rateLimit(l *clientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		remaining, retryAfter, ok := l.allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			secs := int(retryAfter.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("client_ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
