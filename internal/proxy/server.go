// Package proxy serves the site's function endpoints: podcast episodes from
// Spotify, posts from the Medium feed and the Rumination Breaker analysis
// agent.
package proxy

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mmcdole/gofeed"

	"github.com/jasonroy7dct/site/internal/brain"
	"github.com/jasonroy7dct/site/internal/config"
)

// BasePath is where the function endpoints are mounted.
const BasePath = "/.netlify/functions"

// Server holds the endpoint handlers and their collaborators.
type Server struct {
	cfg      config.ProxyConfig
	provider brain.Provider
	limiter  *RateLimiter
	feed     *gofeed.Parser
	client   *http.Client
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithProvider replaces the LLM provider built from the config.
func WithProvider(p brain.Provider) Option {
	return func(s *Server) { s.provider = p }
}

// WithHTTPClient sets the client used for Spotify and the feed.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Server) { s.client = hc }
}

// WithClock replaces time.Now for rate limiting and result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New builds a server from cfg.
func New(cfg config.ProxyConfig, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = brain.OpenAICompatible(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}
	s.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateWindow, s.now)
	s.feed = gofeed.NewParser()
	s.feed.Client = s.client
	return s
}

// Routes returns the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Remaining", "X-RB-Mode", "X-LLM-BaseURL", "X-LLM-Model"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/episodes", s.handleEpisodes)
		r.Get("/medium", s.handleMedium)
		r.Options("/rb_agent", handleAgentPreflight)
		r.Post("/rb_agent", s.handleAgent)
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		})
	})
	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// clientIP prefers the Netlify client header, then the address RealIP
// resolved.
func clientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Nf-Client-Connection-Ip")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
