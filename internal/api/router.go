package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineInterface defines the engine methods the HTTP control surface
// calls. Keep this minimal so tests can supply a stub without building a
// real Mixer.
type EngineInterface interface {
	SampleRate() uint32
	Channels() uint16
	GroupVolume(group string) float32
	SetGroupVolume(group string, volume float32)
	VUMeter() (peak, rms float64)
}

// RouterConfig contains all dependencies needed to construct the HTTP
// router. Designed for dependency injection and testability.
type RouterConfig struct {
	// Engine is the audio engine façade (required).
	Engine EngineInterface

	// Groups lists the group tags /api/state reports volumes for. A
	// group with no explicit SetGroupVolume call still reports 1.0.
	Groups []string

	// RateLimiter is an optional pre-configured rate limiter. If nil, a
	// new one is created from RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is used only when RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed CORS origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for
	// benchmarks and quiet tests).
	DisableLogging bool

	// EnablePprof mounts net/http/pprof under /debug/pprof/. Off by
	// default; turn on only behind a trusted network boundary.
	EnablePprof bool
}

type routerHandlers struct {
	engine EngineInterface
	groups []string
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// Side effects are limited:
//   - No network listeners are opened
//   - The only goroutine it can start is the cleanup loop of the rate
//     limiter it creates when cfg.RateLimiter is nil, and only when the
//     chosen RateLimitConfig has a positive CleanupInterval (the default
//     does)
//
// With CleanupInterval 0 it is safe to use in tests with
// httptest.NewServer without leaving goroutines behind. WebSocket
// routes are added separately by Server, since they need the hub
// instance.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{engine: cfg.Engine, groups: cfg.Groups}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleGetState)
		r.With(rateLimiter.Middleware).Post("/group-volume", h.handleSetGroupVolume)
	})

	r.Handle("/metrics", promhttp.Handler())

	if cfg.EnablePprof {
		mountPprof(r)
	}

	return r
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		RecordRequest(r.Method, endpoint, ww.Status(), time.Since(start))
	})
}
