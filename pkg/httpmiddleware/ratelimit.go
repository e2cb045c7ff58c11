package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the sliding window rate limiter.
type RateLimitConfig struct {
	// Max is the request budget per window for reads.
	Max int
	// WriteMax is the budget for POST, PUT, PATCH and DELETE. Zero means Max.
	// Writes and reads are counted separately.
	WriteMax int
	Window   time.Duration
	// KeyFunc identifies the client. Defaults to ClientIP.
	KeyFunc func(*http.Request) string
}

// window counts hits in the current and the previous fixed window. The
// previous count is weighted by its overlap with the sliding window.
type window struct {
	prev, curr float64
	start      time.Time
}

func (w *window) hit(now time.Time, size time.Duration, limit int) (remaining int, reset time.Time, ok bool) {
	switch elapsed := now.Sub(w.start); {
	case elapsed >= 2*size:
		w.prev, w.curr = 0, 0
		w.start = now.Truncate(size)
	case elapsed >= size:
		w.prev, w.curr = w.curr, 0
		w.start = w.start.Add(size)
	}

	weight := max(0, 1-now.Sub(w.start).Seconds()/size.Seconds())
	used := w.prev*weight + w.curr
	reset = w.start.Add(size)
	if used >= float64(limit) {
		return 0, reset, false
	}
	w.curr++
	return max(0, int(float64(limit)-used-1)), reset, true
}

type rateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientIP
	}
	if cfg.WriteMax <= 0 {
		cfg.WriteMax = cfg.Max
	}
	return &rateLimiter{cfg: cfg, windows: make(map[string]*window), now: time.Now}
}

func (rl *rateLimiter) limitFor(r *http.Request) (key string, limit int) {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return "w:" + rl.cfg.KeyFunc(r), rl.cfg.WriteMax
	default:
		return "r:" + rl.cfg.KeyFunc(r), rl.cfg.Max
	}
}

func (rl *rateLimiter) allow(key string, limit int, now time.Time) (int, time.Time, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{start: now.Truncate(rl.cfg.Window)}
		rl.windows[key] = w
	}
	return w.hit(now, rl.cfg.Window, limit)
}

// evict drops windows idle for two full periods.
func (rl *rateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, w := range rl.windows {
		if now.Sub(w.start) >= 2*rl.cfg.Window {
			delete(rl.windows, key)
		}
	}
}

// RateLimit enforces a per-client sliding window limit. Rejected requests
// get 429 with Retry-After. Every response carries the X-RateLimit headers.
func RateLimit(cfg RateLimitConfig) Middleware {
	return newRateLimiter(cfg).middleware()
}

// RateLimitWithCleanup is RateLimit with a goroutine evicting idle clients
// until ctx is done.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	rl := newRateLimiter(cfg)
	go func() {
		ticker := time.NewTicker(2 * rl.cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.evict(now)
			}
		}
	}()
	return rl.middleware()
}

func (rl *rateLimiter) middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, limit := rl.limitFor(r)
			now := rl.now()
			remaining, reset, ok := rl.allow(key, limit, now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retry := strconv.Itoa(int(math.Ceil(max(0, reset.Sub(now).Seconds()))))
			h.Set("Retry-After", retry)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded",
				map[string]string{"retryAfter": retry})
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyBySubject keys a request by the subject verify extracts from its
// credentials, and by client IP when verify rejects them. Unverified
// credentials never select a budget of their own.
func KeyBySubject(verify func(r *http.Request) (subject string, ok bool)) func(*http.Request) string {
	return func(r *http.Request) string {
		if subject, ok := verify(r); ok {
			return "sub:" + subject
		}
		return "ip:" + ClientIP(r)
	}
}
