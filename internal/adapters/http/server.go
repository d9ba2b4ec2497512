// Package http exposes the solver as a JSON API.
//
// Besides one-shot solving it keeps stepping sessions so a UI can watch the
// search expand, either by polling /sessions/{id}/step or by streaming
// snapshots over a websocket.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/grid"
	"github.com/pdrpinto/gridpath/solver"
)

const maxBodyBytes = 1 << 20

// Server holds the handler dependencies.
type Server struct {
	solver   *solver.Solver
	symbols  grid.Symbols
	logger   *slog.Logger
	metrics  http.Handler
	sessions *sessionStore
	upgrader websocket.Upgrader
	router   chi.Router
}

// Option configures the handler.
type Option func(*Server)

// WithSymbols sets the map symbols used to parse request maps.
func WithSymbols(symbols grid.Symbols) Option {
	return func(s *Server) { s.symbols = symbols }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithMaxSessions bounds the number of open stepping sessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) { s.sessions.max = n }
}

// NewHandler creates a new HTTP handler for the solver.
func NewHandler(sv *solver.Solver, opts ...Option) *Server {
	s := &Server{
		solver:   sv,
		symbols:  grid.DefaultSymbols(),
		logger:   slog.Default(),
		sessions: newSessionStore(64),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Post("/solve", s.solve)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Post("/{id}/step", s.stepSession)
		r.Get("/{id}/stream", s.streamSession)
		r.Delete("/{id}", s.deleteSession)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops every open session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(began),
		)
	})
}

// solveRequest carries a map and optional endpoints. When start and goal are
// omitted the map must contain its own markers.
type solveRequest struct {
	Map   string     `json:"map"`
	Start *grid.Cell `json:"start,omitempty"`
	Goal  *grid.Cell `json:"goal,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	g, ok := s.decodeGrid(w, r)
	if !ok {
		return
	}
	solution, err := s.solver.Solve(r.Context(), g)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solution)
}

func (s *Server) decodeGrid(w http.ResponseWriter, r *http.Request) (*grid.Grid, bool) {
	var body solveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: "request"})
		return nil, false
	}

	var (
		g   *grid.Grid
		err error
	)
	switch {
	case body.Start == nil && body.Goal == nil:
		g, err = grid.Parse(body.Map, s.symbols)
	case body.Start != nil && body.Goal != nil:
		g, err = grid.ParseWithEndpoints(body.Map, s.symbols, *body.Start, *body.Goal)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start and goal must be given together", Kind: "request"})
		return nil, false
	}
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return g, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, grid.ErrConfiguration):
		status, kind = http.StatusBadRequest, "configuration"
	case errors.Is(err, grid.ErrInvalidEndpoint):
		status, kind = http.StatusUnprocessableEntity, "invalid_endpoint"
	case errors.Is(err, gridpath.ErrExpansionLimit):
		status, kind = http.StatusUnprocessableEntity, "expansion_limit"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status, kind = http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, errSessionNotFound):
		status, kind = http.StatusNotFound, "session"
	case errors.Is(err, errTooManySessions):
		status, kind = http.StatusTooManyRequests, "session"
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
