// Package api exposes the rendering pipeline over HTTP.
//
// The server accepts a grid, a plan and render options as JSON and
// returns the encoded artifact directly, so a browser can point an
// <img> tag at the render endpoint.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/gridviz/pkg/buildinfo"
	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/pipeline"
	"github.com/matzehuels/gridviz/pkg/plan"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatGIF:   "image/gif",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatASCII: "text/plain; charset=utf-8",
	pipeline.FormatDOT:   "text/vnd.graphviz",
}

// Server serves the render API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   pipeline.Options
	http   *http.Server
}

// New creates a server bound to addr. The base options supply palette
// and defaults; requests may override scale, delay and format.
func New(addr string, runner *pipeline.Runner, baseOpts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		opts:   baseOpts,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
	})
	return r
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type ctxKeyRequestID struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// ListenAndServe blocks until the context is canceled or the listener
// fails. Shutdown drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// renderRequest is the POST /v1/render body.
type renderRequest struct {
	Grid    []string  `json:"grid"`
	Plan    plan.Plan `json:"plan"`
	Format  string    `json:"format,omitempty"`
	Scale   int       `json:"scale,omitempty"`
	DelayMS int       `json:"delay_ms,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", requestIDFrom(r.Context()))

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode request"))
		return
	}

	g, err := grid.Parse(req.Grid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatGIF
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.opts
	opts.Formats = []string{format}
	if req.Scale != 0 {
		opts.Scale = req.Scale
	}
	if req.DelayMS != 0 {
		opts.DelayMS = req.DelayMS
	}
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), g, &req.Plan, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	logger.Info("rendered",
		"format", format,
		"steps", result.Stats.Steps,
		"bytes", len(result.Artifacts[format]),
		"cached", result.CacheHits[format])

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// writeError maps error codes to HTTP statuses and emits a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidGrid, errors.ErrCodeInvalidPlan,
		errors.ErrCodeInvalidScale, errors.ErrCodeInvalidFormat,
		errors.ErrCodeOutOfBounds:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
