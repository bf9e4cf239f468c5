package httpx

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shishir-py/personal-portfolio-sub000/internal/service/auth"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/blog"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/comment"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/feedback"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/like"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/profile"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/resume"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/upload"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/visitor"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Auth     auth.Service
	Profile  profile.Service
	Resume   resume.Service
	Projects project.Service
	Blog     blog.Service
	Comments comment.Service
	Likes    like.Service
	Feedback feedback.Service
	Visitors visitor.Service
	Uploads  upload.Service
	Hub      *ws.Hub
}

// Options tunes cross-cutting router behaviour.
type Options struct {
	Limiter         RateLimiter
	DBHealth        func(context.Context) error
	EngagementLimit int
	AllowedOrigins  []string
}

// Router wires HTTP endpoints to services.
type Router struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	auth      auth.Service
	profile   profile.Service
	resume    resume.Service
	projects  project.Service
	blog      blog.Service
	comments  comment.Service
	likes     like.Service
	feedback  feedback.Service
	visitors  visitor.Service
	uploads   upload.Service
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	limiter   RateLimiter
	rates     ratePolicy
	dbHealth  func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
	engagementEvents   *prometheus.CounterVec
}

const (
	healthCheckTimeout = 2 * time.Second
	sseHeartbeat       = 15 * time.Second
)

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, svc Services, opts Options) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		logger:    logger,
		auth:      svc.Auth,
		profile:   svc.Profile,
		resume:    svc.Resume,
		projects:  svc.Projects,
		blog:      svc.Blog,
		comments:  svc.Comments,
		likes:     svc.Likes,
		feedback:  svc.Feedback,
		visitors:  svc.Visitors,
		uploads:   svc.Uploads,
		hub:       svc.Hub,
		limiter:   opts.Limiter,
		rates:     newRatePolicy(opts.EngagementLimit),
		dbHealth:  opts.DBHealth,
	}
	r.upgrader = websocket.Upgrader{CheckOrigin: originChecker(opts.AllowedOrigins)}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	if r.hub == nil {
		r.hub = ws.NewHub()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
	if r.hub != nil {
		r.hub.Close()
	}
}

func (r *Router) handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, r.audit(h))
}

func (r *Router) register() {
	r.handle("GET /healthz", r.handleHealthz)
	r.mux.Handle("GET /metrics", r.handleMetrics())

	r.handle("POST /api/auth/login", r.public("login", r.handleLogin))
	r.handle("POST /api/auth/refresh", r.public("refresh", r.handleRefresh))
	r.handle("GET /api/auth/me", r.requireAuth(r.handleMe))

	r.handle("GET /api/profile", r.handleGetProfile)
	r.handle("PUT /api/profile", r.admin("profile", r.handleSaveProfile))

	r.registerResume()
	r.registerProjects()
	r.registerBlog()

	r.handle("GET /api/comments", r.optionalAuth(r.handleListComments))
	r.handle("POST /api/comments", r.public("comments", r.handleCreateComment))
	r.handle("DELETE /api/comments/{id}", r.admin("comments", r.handleDeleteComment))

	r.handle("GET /api/likes", r.handleGetLikes)
	r.handle("POST /api/likes", r.public("likes", r.handlePostLike))

	r.handle("POST /api/feedback", r.public("feedback", r.handleSubmitFeedback))
	r.handle("GET /api/feedback", r.requireAuth(r.handleListFeedback))
	r.handle("PUT /api/feedback/{id}/read", r.admin("feedback", r.handleMarkFeedback))
	r.handle("DELETE /api/feedback/{id}", r.admin("feedback", r.handleDeleteFeedback))

	r.handle("POST /api/visitors", r.public("visitors", r.handleRecordVisit))
	r.handle("GET /api/visitors/stats", r.requireAuth(r.handleVisitorStats))

	r.handle("POST /api/upload", r.admin("upload", r.handleUpload))
	r.mux.Handle("GET "+upload.URLPrefix, r.audit(r.serveUploads().ServeHTTP))

	r.handle("GET /api/stream/{type}/{id}", r.public("stream", r.handleStream))
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) audit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.recordRequestMetrics(req.Method, route, status, duration)

		actor := "anonymous"
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"route", route,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if reqID := strings.TrimSpace(req.Header.Get("X-Request-ID")); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if info, ok := authInfoFromContext(ctx); ok {
			actor = "admin"
			fields = append(fields, "user_id", info.UserID)
		}
		fields = append(fields, "actor", actor)

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := sr.ResponseWriter.(http.Hijacker); ok {
		sr.status = http.StatusSwitchingProtocols
		return h.Hijack()
	}
	return nil, nil, errors.New("hijacker not supported")
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) applyRateHeaders(w http.ResponseWriter, limit int, decision rateDecision) {
	if limit <= 0 {
		return
	}
	remaining := limit - decision.count
	if remaining < 0 {
		remaining = 0
	}
	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !decision.windowEnd.IsZero() {
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.windowEnd.Unix(), 10))
	}
}

// originChecker allows websocket upgrades from the configured origins, or
// from anywhere when the list is empty or contains "*".
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return func(req *http.Request) bool {
		if len(set) == 0 {
			return true
		}
		origin := req.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}
