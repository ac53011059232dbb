package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP control surface combining the REST router with the
// VU-meter WebSocket hub.
type Server struct {
	engine      EngineInterface
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with default production
// configuration for the given groups.
//
// The hub's event loop, the VU broadcast loop and the listener do NOT
// start until Start() is called. The rate limiter's cleanup goroutine
// does start here; Stop releases it.
func NewServer(eng EngineInterface, groups []string) *Server {
	s := &Server{
		engine: eng,
		wsHub:  NewWebSocketHub(),
	}
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)
	s.router = NewRouter(RouterConfig{
		Engine:      eng,
		Groups:      groups,
		RateLimiter: s.rateLimiter,
	})
	s.router.Get("/ws/vu", s.wsHub.HandleWebSocket)
	return s
}

// Start begins the HTTP server and its background workers. Call this
// only once; stop the process to shut it down, or call Stop first to
// release the rate limiter's cleanup goroutine.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartVUBroadcastLoop(s.engine)

	log.Printf("audio engine control surface listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop releases background resources started outside of Start (the rate
// limiter's cleanup goroutine).
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
