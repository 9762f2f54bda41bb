
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"abit-rating/internal/catalog"
	"abit-rating/internal/models"
	"abit-rating/internal/parser"
	"abit-rating/internal/report"
	"abit-rating/internal/service"
	"abit-rating/pkg/logger"
)

// Server is the HTTP API over the rating service.
type Server struct {
	router  chi.Router
	svc     *service.Service
	log     *logger.Logger
	timeout time.Duration
}

func NewServer(svc *service.Service, log *logger.Logger, timeout time.Duration) *Server {
	s := &Server{svc: svc, log: log, timeout: timeout}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/universities", func(r chi.Router) {
		r.Get("/", s.handleUniversities)
		r.Get("/{university}/faculties/{faculty}/rating", s.handleRating)
		r.Get("/{university}/faculties/{faculty}/analysis", s.handleAnalysis)
	})

	s.router = r
}

func (s *Server) handleUniversities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Catalog())
}

func (s *Server) handleRating(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = &n
	}
	rating, ok := s.rating(w, r)
	if !ok {
		return
	}
	rating.Records = report.List(rating.Records, limit)
	writeJSON(w, http.StatusOK, rating)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.URL.Query().Get("position"))
	if err != nil || position < 1 {
		jsonError(w, "position must be a positive integer", http.StatusBadRequest)
		return
	}
	rating, ok := s.rating(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"university":   rating.University,
		"faculty":      rating.Faculty,
		"budgetPlaces": rating.BudgetPlaces,
		"analysis":     report.Analyze(rating.Records, position),
	})
}

// rating resolves path ids, fetches and extracts. It writes the error response
// itself and reports false on failure.
func (s *Server) rating(w http.ResponseWriter, r *http.Request) (models.Rating, bool) {
	uid, err1 := strconv.Atoi(chi.URLParam(r, "university"))
	fid, err2 := strconv.Atoi(chi.URLParam(r, "faculty"))
	if err1 != nil || err2 != nil {
		jsonError(w, "university and faculty must be numeric ids", http.StatusBadRequest)
		return models.Rating{}, false
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rating, err := s.svc.Rating(ctx, uid, fid)
	switch {
	case err == nil:
		return rating, true
	case errors.Is(err, catalog.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, parser.ErrMalformedCell):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Errorf("rating %d/%d: %v", uid, fid, err)
		jsonError(w, err.Error(), http.StatusBadGateway)
	}
	return models.Rating{}, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
