// Package api exposes the quantizer, the live picker selection and the
// stored history over HTTP and WebSocket.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/storage"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

// Server is the REST API server
type Server struct {
	config  *config.Config
	storage storage.Storage
	wsHub   *WebSocketHub

	mu        sync.RWMutex
	selection timespan.Components
	options   timespan.Options
	server    *http.Server
	running   bool
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, store storage.Storage) *Server {
	wsHub := NewWebSocketHub()
	wsHub.SetSecurityConfig(cfg.APIKey, cfg.CORSAllowedOrigins)

	return &Server{
		config:  cfg,
		storage: store,
		wsHub:   wsHub,
		options: cfg.Options(),
	}
}

// SetSelection publishes the picker's current value to API clients
func (s *Server) SetSelection(c timespan.Components, opts timespan.Options) {
	s.mu.Lock()
	s.selection = c
	s.options = opts
	s.mu.Unlock()

	s.BroadcastMessage("selection", SelectionData{
		Hour:         c.Hour,
		Minute:       c.Minute,
		Second:       c.Second,
		TotalSeconds: c.TotalSeconds(),
		Mode:         opts.Mode.String(),
	})
}

// Start starts the API server on the given port
func (s *Server) Start(port int) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	log.Info().Int("port", port).Msg("api server starting")
	return s.server.ListenAndServe()
}

// Stop stops the API server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	s.wsHub.Stop()

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// IsRunning returns whether the server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogMiddleware)
	r.Use(corsMiddleware(s.config.CORSAllowedOrigins))

	// Health check (public, no auth required)
	r.Get("/health", s.healthHandler)

	// API routes (protected by API key if configured)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiKeyAuthMiddleware(s.config.APIKey))

		// Quantization
		r.Post("/quantize", s.quantizeHandler)

		// Live picker selection
		r.Get("/selection", s.getSelectionHandler)

		// History
		r.Get("/history", s.listHistoryHandler)
		r.Get("/history/{id}", s.getHistoryHandler)
		r.Delete("/history/{id}", s.deleteHistoryHandler)

		// Statistics
		r.Get("/stats", s.getStatsHandler)

		// Configuration
		r.Get("/config", s.getConfigHandler)

		// WebSocket endpoint
		r.Get("/ws", s.websocketHandler)
	})

	return r
}

// requestLogMiddleware logs each request with its status and timing
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// corsMiddleware creates CORS middleware with the given allowed origins.
// No origin is allowed implicitly; every origin must be configured.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	exactOrigins := make(map[string]bool)
	var patterns []string

	for _, origin := range allowedOrigins {
		if strings.Contains(origin, "*") {
			patterns = append(patterns, origin)
		} else {
			exactOrigins[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if origin != "" {
				if exactOrigins[origin] {
					allowed = true
				} else {
					for _, pattern := range patterns {
						if matchOriginPattern(origin, pattern) {
							allowed = true
							break
						}
					}
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-API-Key")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// apiKeyAuthMiddleware creates middleware that validates API key from header
func apiKeyAuthMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// If no API key is configured, allow all requests (optional auth)
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get("X-API-Key")
			if providedKey == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					providedKey = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if providedKey != apiKey {
				http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchOriginPattern checks if an origin matches a pattern with wildcards
// e.g., "http://localhost:3000" matches "http://localhost:*"
func matchOriginPattern(origin, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(origin, prefix)
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.TrimPrefix(pattern, "*")
		parts := strings.SplitN(origin, "://", 2)
		if len(parts) == 2 {
			host := strings.Split(parts[1], "/")[0]
			host = strings.Split(host, ":")[0]
			return strings.HasSuffix(host, suffix) || host == strings.TrimPrefix(suffix, ".")
		}
	}
	return false
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Handlers

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// quantizeRequest carries a duration and optional option overrides.
// Omitted options fall back to the server's configuration.
type quantizeRequest struct {
	Seconds        int    `json:"seconds"`
	Mode           string `json:"mode,omitempty"`
	HourInterval   *int   `json:"hour_interval,omitempty"`
	MinuteInterval *int   `json:"minute_interval,omitempty"`
	SecondInterval *int   `json:"second_interval,omitempty"`
	Rounding       string `json:"rounding,omitempty"`
	MinimumSeconds *int   `json:"minimum_seconds,omitempty"`
	MaximumSeconds *int   `json:"maximum_seconds,omitempty"`
}

func (s *Server) quantizeHandler(w http.ResponseWriter, r *http.Request) {
	var req quantizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := s.config.Options()

	if req.Mode != "" {
		mode, err := timespan.ParseMode(req.Mode)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Mode = mode
	}
	if req.Rounding != "" {
		rounding, err := timespan.ParseRounding(req.Rounding)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Rounding = rounding
	}
	if req.HourInterval != nil {
		if !timespan.ValidInterval(*req.HourInterval, 24) {
			respondError(w, http.StatusBadRequest, "hour_interval must evenly divide 24")
			return
		}
		opts.HourInterval = *req.HourInterval
	}
	if req.MinuteInterval != nil {
		if !timespan.ValidInterval(*req.MinuteInterval, 60) {
			respondError(w, http.StatusBadRequest, "minute_interval must evenly divide 60")
			return
		}
		opts.MinuteInterval = *req.MinuteInterval
	}
	if req.SecondInterval != nil {
		if !timespan.ValidInterval(*req.SecondInterval, 60) {
			respondError(w, http.StatusBadRequest, "second_interval must evenly divide 60")
			return
		}
		opts.SecondInterval = *req.SecondInterval
	}
	if req.MinimumSeconds != nil {
		opts.Minimum = req.MinimumSeconds
	}
	if req.MaximumSeconds != nil {
		opts.Maximum = req.MaximumSeconds
	}

	c := timespan.Quantize(req.Seconds, opts)
	min, max := opts.Bounds()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hour":          c.Hour,
		"minute":        c.Minute,
		"second":        c.Second,
		"total_seconds": c.TotalSeconds(),
		"formatted":     c.String(),
		"display":       util.FormatSecondsLong(c.TotalSeconds()),
		"mode":          opts.Mode.String(),
		"rounding":      opts.Rounding.String(),
		"minimum":       min,
		"maximum":       max,
	})
}

func (s *Server) getSelectionHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	c := s.selection
	opts := s.options
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hour":          c.Hour,
		"minute":        c.Minute,
		"second":        c.Second,
		"total_seconds": c.TotalSeconds(),
		"formatted":     c.String(),
		"mode":          opts.Mode.String(),
		"rounding":      opts.Rounding.String(),
	})
}

func (s *Server) listHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not available")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := &storage.SelectionFilter{Limit: limit}
	if mode := r.URL.Query().Get("mode"); mode != "" {
		filter.Mode = mode
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	records, err := s.storage.ListSelections(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	selections := make([]map[string]interface{}, 0)
	for _, rec := range records {
		selections = append(selections, selectionJSON(rec))
	}

	count, _ := s.storage.CountSelections(r.Context(), filter)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"selections": selections,
		"count":      len(selections),
		"total":      count,
	})
}

func (s *Server) getHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not available")
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.storage.GetSelection(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "selection not found")
		return
	}

	respondJSON(w, http.StatusOK, selectionJSON(rec))
}

func (s *Server) deleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not available")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.storage.DeleteSelection(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "selection not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) getStatsHandler(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "storage not available")
		return
	}

	stats, err := s.storage.GetStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":            stats.Count,
		"total_seconds":    stats.TotalSeconds,
		"average_seconds":  stats.AverageSeconds,
		"longest_seconds":  stats.LongestSeconds,
		"shortest_seconds": stats.ShortestSeconds,
		"by_mode":          stats.ByMode,
	})
}

func (s *Server) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":            s.config.Mode,
		"hour_interval":   s.config.HourInterval,
		"minute_interval": s.config.MinuteInterval,
		"second_interval": s.config.SecondInterval,
		"rounding":        s.config.Rounding,
		"minimum_seconds": s.config.MinimumSeconds,
		"maximum_seconds": s.config.MaximumSeconds,
		"theme":           s.config.Theme,
	})
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	s.wsHub.ServeWs(w, r)
}

// BroadcastMessage sends a message to all connected WebSocket clients
func (s *Server) BroadcastMessage(msgType string, data interface{}) {
	msg := WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	}
	s.wsHub.Broadcast(msg)
}

func selectionJSON(rec *storage.SelectionRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":              rec.ID,
		"mode":            rec.Mode,
		"hour":            rec.Hour,
		"minute":          rec.Minute,
		"second":          rec.Second,
		"total_seconds":   rec.TotalSeconds,
		"hour_interval":   rec.HourInterval,
		"minute_interval": rec.MinuteInterval,
		"second_interval": rec.SecondInterval,
		"rounding":        rec.Rounding,
		"minimum_seconds": rec.MinimumSeconds,
		"maximum_seconds": rec.MaximumSeconds,
		"created_at":      rec.CreatedAt.Format(time.RFC3339),
	}
}
