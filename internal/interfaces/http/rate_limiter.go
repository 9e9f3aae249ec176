package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterIdleTTL tiempo sin peticiones tras el cual se olvida una IP.
// Debe superar el minuto que tarda la cubeta en llenarse.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limita peticiones por IP con un token bucket por cliente.
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter permite perMinute peticiones por minuto y por IP (ráfaga = perMinute).
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 20
	}
	return &IPRateLimiter{
		clients: make(map[string]*visitor),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		now:     time.Now,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}
	v, ok := l.clients[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = v
	}
	v.lastSeen = now
	return v.lim
}

// sweep elimina las IPs inactivas; su cubeta ya estaría llena otra vez.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, v := range l.clients {
		if now.Sub(v.lastSeen) >= limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// Allow consume un token de la IP.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

// Middleware responde 429 cuando la IP agotó su cupo.
func (l *IPRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			return errorJSON(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "demasiados intentos, intente más tarde")
		}
		return c.Next()
	}
}
