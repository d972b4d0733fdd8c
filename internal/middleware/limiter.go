package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"thrift-store-be/internal/apperror"

	"golang.org/x/time/rate"
)

// Rate limit tiers
const (
	// login / register
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// trusted services presenting X-Service-Auth
	limitInternal = rate.Limit(100)
	burstInternal = 200

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type tier struct {
	name  string
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller and tier.
type RateLimiter struct {
	general     tier
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimiter(rps float64, burst int, internalKey string) *RateLimiter {
	rl := &RateLimiter{
		general:     tier{name: "general", limit: rate.Limit(rps), burst: burst},
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
		stop:        make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evict(time.Now())
		}
	}
}

func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, key)
		}
	}
}

func (rl *RateLimiter) getVisitor(key string, t tier) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) resolveTier(r *http.Request) tier {
	if rl.internalKey != "" && r.Header.Get("X-Service-Auth") == rl.internalKey {
		return tier{name: "internal", limit: limitInternal, burst: burstInternal}
	}
	if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/auth/") {
		return tier{name: "strict", limit: limitStrict, burst: burstStrict}
	}
	return rl.general
}

// clientKey identifies the caller by remote address. The limiter runs ahead
// of authentication, so client-supplied headers are never trusted here.
func clientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := rl.resolveTier(r)
		// same caller gets separate quotas per tier
		key := clientKey(r) + ":" + t.name

		if !rl.getVisitor(key, t).Allow() {
			w.Header().Set("Retry-After", "1")
			apperror.Write(w, r, apperror.ErrTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
