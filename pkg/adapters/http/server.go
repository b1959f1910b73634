// Package http exposes the assessment engine as a JSON REST API for
// browser and mobile clients.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/internal/logging"
	"github.com/bonsono/sonolog/pkg/domain"
)

// Server adapts the engine to HTTP.
type Server struct {
	engine *sonolog.Engine
	logger *slog.Logger
}

// HandlerOption configures the handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithMetricsGatherer mounts /metrics over the given registry.
func WithMetricsGatherer(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *sonolog.Engine, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	server := &Server{engine: engine, logger: cfg.logger}

	r := chi.NewRouter()
	r.Get("/healthz", server.health)
	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", server.startSession)
		r.Get("/sessions", server.listSessions)
		r.Get("/sessions/{id}", server.getSession)
		r.Post("/sessions/{id}/answer", server.answer)
		r.Post("/sessions/{id}/rewind", server.rewind)
		r.Delete("/sessions/{id}", server.abandon)
		r.Get("/profiles/{id}", server.getProfile)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": sonolog.Version,
	})
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("start: invalid request body", "err", err)
		return
	}

	var opts []sonolog.StartOption
	if body.SessionID != "" {
		opts = append(opts, sonolog.StartWithID(body.SessionID))
	}
	if body.ResumeAt != nil {
		opts = append(opts, sonolog.StartAt(domain.NodeID(*body.ResumeAt)))
	}

	view, err := s.engine.Start(r.Context(), personalToDomain(body.Personal), opts...)
	if err != nil {
		s.replyError(w, "start", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, viewFromEngine(view))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.replyError(w, "list sessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, SessionListResponse{Sessions: ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.replyError(w, "view session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewFromEngine(view))
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("answer: invalid request body", "err", err)
		return
	}

	answer := domain.Answer{Value: body.Value, OptionIDs: body.OptionIDs}
	view, err := s.engine.Answer(r.Context(), chi.URLParam(r, "id"), answer)
	if err != nil {
		s.replyError(w, "answer", err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewFromEngine(view))
}

func (s *Server) rewind(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.Rewind(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.replyError(w, "rewind", err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewFromEngine(view))
}

func (s *Server) abandon(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.replyError(w, "abandon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.engine.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.replyError(w, "get profile", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ProfileView{
		SessionID:        profile.SessionID,
		Personal:         personalFromDomain(profile.Personal),
		CompletedAt:      profile.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		CompletionReason: string(profile.CompletionReason),
		Report:           reportFromDomain(profile.Report),
	})
}

// replyError maps domain errors onto HTTP statuses.
func (s *Server) replyError(w http.ResponseWriter, op string, err error) {
	var invalidAnswer *domain.InvalidAnswerError
	var integrity *domain.GraphIntegrityError

	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrProfileNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidAnswer):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrSessionTerminated), errors.Is(err, domain.ErrCannotRewind):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAccessRequired):
		s.writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.As(err, &integrity):
		s.writeError(w, http.StatusInternalServerError, "questionnaire integrity error")
		s.logger.Error(fmt.Sprintf("%s: graph integrity failure", op), "err", err)
	default:
		s.writeError(w, http.StatusInternalServerError, "internal error")
		s.logger.Error(fmt.Sprintf("%s failed", op), "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
