package httpx

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	rateLimiterSweepInterval = 5 * time.Minute
	rateWindowDefault        = time.Minute

	rateLimitLogin             = 12
	rateLimitAdminWrite        = 120
	rateLimitFeedback          = 5
	rateLimitVisits            = 120
	rateLimitStream            = 30
	rateLimitEngagementDefault = 30
)

// rateRule is the budget one caller gets on a route per window.
type rateRule struct {
	limit  int
	window time.Duration
}

// ratePolicy maps anonymous route names to their budgets. Likes and
// comments share the configurable engagement budget.
type ratePolicy map[string]rateRule

func newRatePolicy(engagement int) ratePolicy {
	if engagement <= 0 {
		engagement = rateLimitEngagementDefault
	}
	return ratePolicy{
		"login":    {limit: rateLimitLogin, window: rateWindowDefault},
		"refresh":  {limit: rateLimitLogin, window: rateWindowDefault},
		"comments": {limit: engagement, window: rateWindowDefault},
		"likes":    {limit: engagement, window: rateWindowDefault},
		"feedback": {limit: rateLimitFeedback, window: rateWindowDefault},
		"visitors": {limit: rateLimitVisits, window: rateWindowDefault},
		"stream":   {limit: rateLimitStream, window: rateWindowDefault},
	}
}

// rule returns the budget for route. Unlisted routes get the admin write
// budget so a route added without a policy entry is never unlimited.
func (p ratePolicy) rule(route string) rateRule {
	if rule, ok := p[route]; ok {
		return rule
	}
	return rateRule{limit: rateLimitAdminWrite, window: rateWindowDefault}
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) rateDecision
	Close()
}

type rateDecision struct {
	allowed   bool
	count     int
	windowEnd time.Time
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateState
	stopCh  chan struct{}
	once    sync.Once
}

type rateState struct {
	count     int
	windowEnd time.Time
}

// NewMemoryRateLimiter returns a process-local limiter. It is used when no
// Redis address is configured or Redis is unreachable at startup.
func NewMemoryRateLimiter() RateLimiter {
	rl := &memoryRateLimiter{
		entries: make(map[string]rateState),
		stopCh:  make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *memoryRateLimiter) Allow(key string, limit int, window time.Duration) rateDecision {
	if limit <= 0 {
		return rateDecision{allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || now.After(state.windowEnd) {
		state = rateState{count: 1, windowEnd: now.Add(window)}
		rl.entries[key] = state
		return rateDecision{allowed: true, count: state.count, windowEnd: state.windowEnd}
	}
	if state.count >= limit {
		return rateDecision{allowed: false, count: state.count, windowEnd: state.windowEnd}
	}
	state.count++
	rl.entries[key] = state
	return rateDecision{allowed: true, count: state.count, windowEnd: state.windowEnd}
}

func (rl *memoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *memoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, state := range rl.entries {
		if now.After(state.windowEnd) {
			delete(rl.entries, key)
		}
	}
}

func (rl *memoryRateLimiter) Close() {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
}

func (r *Router) withRateLimit(route string, limit int, window time.Duration, keyFn func(*http.Request) string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if limit <= 0 || r.limiter == nil {
			next(w, req)
			return
		}
		key := keyFn(req)
		if key == "" {
			key = rateLimitKeyIP(req)
		}
		decision := r.limiter.Allow(route+"|"+key, limit, window)
		r.applyRateHeaders(w, limit, decision)
		if !decision.allowed {
			label := route
			if label == "" {
				label = req.URL.Path
			}
			r.recordRateLimitHit(label, rateMetricKey(key))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, req)
	}
}

// admin gates a mutating route behind auth and the per-user write limit.
func (r *Router) admin(route string, next http.HandlerFunc) http.HandlerFunc {
	return r.handlerAuthRate(route, rateLimitAdminWrite, rateWindowDefault, next)
}

// public rate limits an anonymous route per client IP using its policy.
func (r *Router) public(route string, next http.HandlerFunc) http.HandlerFunc {
	rule := r.rates.rule(route)
	return r.withRateLimit(route, rule.limit, rule.window, rateLimitKeyIP, next)
}

func (r *Router) handlerAuthRate(route string, limit int, window time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return r.requireAuth(r.withRateLimit(route, limit, window, r.rateLimitKeyUser, next))
}

func (r *Router) rateLimitKeyUser(req *http.Request) string {
	if info, ok := authInfoFromContext(req.Context()); ok && info.UserID != "" {
		return "user:" + info.UserID
	}
	return ""
}

func rateLimitKeyIP(req *http.Request) string {
	host := clientIP(req)
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}

// rateMetricKey reduces a limiter key to its kind so metric label
// cardinality stays bounded.
func rateMetricKey(key string) string {
	if key == "" {
		return "unknown"
	}
	if idx := strings.IndexRune(key, ':'); idx > 0 {
		return key[:idx]
	}
	return "other"
}
