// Package server exposes the small operational HTTP surface: health check,
// staged-article inspection, and a manual run trigger. It reports store
// connectivity, not pipeline state.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dailybrief/internal/core"
	"dailybrief/internal/logger"
)

// StagingStore is the read side the server inspects.
type StagingStore interface {
	TodayArticles(ctx context.Context) ([]core.Article, error)
	Ping(ctx context.Context) error
}

// Trigger starts one briefing run on demand.
type Trigger func(ctx context.Context) error

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}

// Server is the operational HTTP server.
type Server struct {
	store   StagingStore
	trigger Trigger
	httpSrv *http.Server
}

// New creates the server listening on addr.
func New(addr string, store StagingStore, trigger Trigger) *Server {
	s := &Server{
		store:   store,
		trigger: trigger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/briefing/health", s.handleHealth)
	mux.HandleFunc("/api/briefing/articles", s.handleArticles)
	mux.HandleFunc("/api/briefing/trigger", s.handleTrigger)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("status server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("status server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "UP", Redis: "connected"}
	code := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		resp.Redis = "disconnected"
		code = http.StatusServiceUnavailable
	}

	s.respondJSON(w, code, resp)
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.TodayArticles(r.Context())
	if err != nil {
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, articles)
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	logger.Info("manual trigger received", "remote", r.RemoteAddr)

	if s.trigger == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "trigger not configured"})
		return
	}

	if err := s.trigger(r.Context()); err != nil {
		logger.Error("manual trigger failed", err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"message": "briefing processed"})
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("writing response", err)
	}
}
